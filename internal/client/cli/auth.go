package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
)

const signingKeySize = 32

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Keygen prints a random key suitable for the server's secret key setting.
func (a *App) Keygen() error {
	_, err := fmt.Fprintln(a.out, common.NewSigningKey(signingKeySize))
	return err
}

func (a *App) credentials(args []string) (string, []byte, error) {
	var userName string
	if len(args) > 0 {
		userName = args[0]
	} else {
		var err error
		userName, err = getSimpleText(a.reader, "Enter username", a.out)
		if err != nil {
			return "", nil, err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

func (a *App) Register(ctx context.Context, args []string) error {
	userName, password, err := a.credentials(args)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, userName, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registered. Now run: login", userName)
	return nil
}

func (a *App) Login(ctx context.Context, args []string) error {
	userName, password, err := a.credentials(args)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, userName, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Logged in as", userName)
	return nil
}

func (a *App) Me(ctx context.Context) error {
	u, err := a.authService.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (id %d)\n", u.UserName, u.ID)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
