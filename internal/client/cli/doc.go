// Package cli implements the to-do command-line client.
//
// Commands:
//
//	keygen             print a fresh base64 signing key for the server
//	register [name]    create an account
//	login [name]       log in and store the session token locally
//	me                 show the logged-in identity
//	logout             end the session and forget the local token
//	version            print build version, date and commit
//
// Passwords are read from the terminal without echo.
package cli
