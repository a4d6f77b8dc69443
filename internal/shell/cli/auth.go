package cli

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/pyhx/internal/common"
	"github.com/dmitrijs2005/pyhx/internal/shell/models"
	"github.com/dmitrijs2005/pyhx/internal/shell/registry"
)

// authenticate lists the known users, asks for a 1-based selection and the
// password of the chosen user.
//
// The welcome banner is suppressed when switching. An out-of-range or
// non-numeric selection and a wrong password all yield an error wrapping
// common.ErrAuthFailure after printing a short notice; read errors (end of
// input, cancellation) are returned unchanged.
func (a *App) authenticate(ctx context.Context, switching bool) (models.Identity, error) {
	if !switching {
		a.println(a.styles.banner.Render("--- Welcome to PyHx OS ---"))
	}

	names, healed := a.auth.Usernames(ctx)
	if healed {
		a.println("First run detected or users.json is invalid. Creating default 'root' user.")
		a.println("Default password is 'root'. Please change it immediately with 'changepass'.")
	}

	a.println("Please select a user:")
	for i, name := range names {
		a.printf("  %d. %s\n", i+1, name)
	}

	choice, err := a.ask(ctx, "Enter number: ")
	if err != nil {
		return models.Identity{}, err
	}

	n, err := strconv.Atoi(choice)
	if err != nil {
		a.println("Invalid input.")
		return models.Identity{}, common.Errorf(common.ErrAuthFailure, "invalid input")
	}
	if n < 1 || n > len(names) {
		a.println("Invalid selection.")
		return models.Identity{}, common.Errorf(common.ErrAuthFailure, "invalid selection")
	}
	username := names[n-1]

	password, err := a.askPassword(ctx, "Password for "+username+": ")
	if err != nil {
		return models.Identity{}, err
	}
	defer common.WipeByteArray(password)

	id, err := a.auth.Login(ctx, username, password)
	if err != nil {
		a.println("\nAuthentication failed.")
		return models.Identity{}, err
	}

	if !switching {
		a.printf("\nLogin successful. Welcome, %s!\n", username)
	}
	return id, nil
}

func (a *App) cmdWhoami(ctx context.Context, call registry.Call) (registry.Result, error) {
	a.println(call.Session.Identity.Username)
	return registry.Next, nil
}

// cmdSwitchUser re-runs authentication; on failure the current identity is
// kept.
func (a *App) cmdSwitchUser(ctx context.Context, call registry.Call) (registry.Result, error) {
	a.println("Switching user...")

	id, err := a.authenticate(ctx, true)
	if err != nil {
		if ctx.Err() != nil {
			return registry.Result{}, ctx.Err()
		}
		a.log.Info(ctx, "user switch failed")
		a.println("Switch user failed. Returning to current session.")
		return registry.Next, nil
	}

	from := call.Session.Identity.Username
	call.Session.SwitchTo(id)
	a.log.Info(ctx, "user switched", "from", from, "to", id.Username)

	return registry.Result{Continue: true, Session: call.Session}, nil
}

func (a *App) cmdChangePass(ctx context.Context, call registry.Call) (registry.Result, error) {
	username := call.Session.Identity.Username
	a.printf("Changing password for %s.\n", username)

	current, err := a.askPassword(ctx, "Current password: ")
	if err != nil {
		return registry.Result{}, err
	}
	defer common.WipeByteArray(current)

	if _, err := a.auth.Login(ctx, username, current); err != nil {
		return registry.Result{}, err
	}

	next, err := a.askPassword(ctx, "New password: ")
	if err != nil {
		return registry.Result{}, err
	}
	defer common.WipeByteArray(next)

	confirm, err := a.askPassword(ctx, "Confirm new password: ")
	if err != nil {
		return registry.Result{}, err
	}
	defer common.WipeByteArray(confirm)

	if err := a.auth.ChangePassword(ctx, username, current, next, confirm); err != nil {
		return registry.Result{}, err
	}

	a.println("Password changed successfully.")
	return registry.Next, nil
}

const (
	userUsage       = "user <add|delete> ..."
	userAddUsage    = "user add <-u|-a> <username> <password>"
	userDeleteUsage = "user delete <username>"
)

// cmdUser manages accounts. The dispatcher already restricts it to admins;
// the service checks again.
func (a *App) cmdUser(ctx context.Context, call registry.Call) (registry.Result, error) {
	if len(call.Args) == 0 {
		return registry.Result{}, common.Usage(userUsage)
	}

	actor := call.Session.Identity
	sub, args := call.Args[0], call.Args[1:]

	switch sub {
	case "add":
		if len(args) != 3 || (args[0] != "-u" && args[0] != "-a") {
			return registry.Result{}, common.Usage(userAddUsage)
		}
		role := models.RoleUser
		if args[0] == "-a" {
			role = models.RoleAdmin
		}
		username, password := args[1], []byte(args[2])
		defer common.WipeByteArray(password)

		if err := a.auth.AddUser(ctx, actor, username, password, role); err != nil {
			return registry.Result{}, err
		}
		a.printf("Successfully added user '%s' with role '%s'.\n", username, role)

	case "delete":
		if len(args) != 1 {
			return registry.Result{}, common.Usage(userDeleteUsage)
		}
		username := args[0]

		if err := a.auth.CheckDelete(ctx, actor, username); err != nil {
			return registry.Result{}, err
		}

		confirm, err := a.ask(ctx, "To confirm deletion of '"+username+"', please type the username again: ")
		if err != nil {
			return registry.Result{}, err
		}
		if confirm != username {
			a.println("Confirmation failed.")
			return registry.Next, nil
		}

		if err := a.auth.DeleteUser(ctx, actor, username); err != nil {
			return registry.Result{}, err
		}
		a.printf("Successfully deleted user '%s'.\n", username)

	default:
		return registry.Result{}, common.Usage(userUsage)
	}

	return registry.Next, nil
}
