package cli

import "github.com/dmitrijs2005/pyhx/internal/shell/registry"

func (a *App) commands() []registry.Descriptor {
	h := func(f registry.HandlerFunc) registry.Handler { return f }

	return []registry.Descriptor{
		// System
		{Name: "help", Category: registry.CategorySystem, Help: "Displays the command list.", Usage: "help [command]", Handler: h(a.cmdHelp)},
		{Name: "info", Category: registry.CategorySystem, Help: "Shows system and user information.", Handler: h(a.cmdInfo)},
		{Name: "clear", Category: registry.CategorySystem, Help: "Clears the screen.", Handler: h(a.cmdClear)},
		{Name: "history", Category: registry.CategorySystem, Help: "Shows command history for this session.", Handler: h(a.cmdHistory)},
		{Name: "datetime", Category: registry.CategorySystem, Help: "Displays the current date and time.", Handler: h(a.cmdDatetime)},
		{Name: "restart", Category: registry.CategorySystem, Help: "Restarts the PyHx shell.", Handler: h(a.cmdRestart)},
		{Name: "shutdown", Category: registry.CategorySystem, Help: "Exits the PyHx shell.", Handler: h(a.cmdShutdown)},
		{Name: "version", Category: registry.CategorySystem, Help: "Shows the PyHx OS version.", Handler: h(a.cmdVersion)},

		// File
		{Name: "whereami", Category: registry.CategoryFile, Help: "Tells you your current directory.", Handler: h(a.cmdWhereami)},
		{Name: "go", Category: registry.CategoryFile, Help: "Go to a different directory.", Usage: goUsage, Handler: h(a.cmdGo)},
		{Name: "look", Category: registry.CategoryFile, Help: "Look at the files in a directory.", Usage: "look [directory]", Handler: h(a.cmdLook)},
		{Name: "make", Category: registry.CategoryFile, Help: "Make a 'file' or 'dir'.", Usage: makeUsage, Handler: h(a.cmdMake)},
		{Name: "read", Category: registry.CategoryFile, Help: "Read the contents of a file.", Usage: readUsage, Handler: h(a.cmdRead)},
		{Name: "delete", Category: registry.CategoryFile, Help: "Delete a file or empty directory.", Usage: deleteUsage, Handler: h(a.cmdDelete)},
		{Name: "copy", Category: registry.CategoryFile, Help: "Copy a file.", Usage: copyUsage, Handler: h(a.cmdCopy)},
		{Name: "move", Category: registry.CategoryFile, Help: "Move or rename a file.", Usage: moveUsage, Handler: h(a.cmdMove)},
		{Name: "say", Category: registry.CategoryFile, Help: `Prints text. Use > to make a file (e.g., say "hi" > a.txt).`, Usage: sayUsage, AcceptsRedirect: true, Handler: h(a.cmdSay)},
		{Name: "count", Category: registry.CategoryFile, Help: "Count lines, words, and characters in a file.", Usage: countUsage, Handler: h(a.cmdCount)},
		{Name: "findtext", Category: registry.CategoryFile, Help: "Find text inside a file.", Usage: findtextUsage, Handler: h(a.cmdFindtext)},

		// User
		{Name: "whoami", Category: registry.CategoryUser, Help: "Displays your username.", Handler: h(a.cmdWhoami)},
		{Name: "user", Category: registry.CategoryUser, Help: "Manages users (add, delete). Admin only.", Usage: userUsage, RequiredRole: registry.RoleAdmin, Handler: h(a.cmdUser)},
		{Name: "changepass", Category: registry.CategoryUser, Help: "Change your password.", Handler: h(a.cmdChangePass)},
		{Name: "switchuser", Category: registry.CategoryUser, Help: "Switch to another user account.", Handler: h(a.cmdSwitchUser)},

		// App
		{Name: "convert", Category: registry.CategoryApp, Help: "Converts a folder to a package and stages it (e.g. convert -pyhx <folder>).", Usage: convertUsage, Handler: h(a.cmdConvert)},
		{Name: "install", Category: registry.CategoryApp, Help: "Installs a package from the staging area.", Usage: installUsage, Handler: h(a.cmdInstall)},
		{Name: "run", Category: registry.CategoryApp, Help: "Runs an installed package.", Usage: runUsage, Handler: h(a.cmdRun)},
		{Name: "packages", Category: registry.CategoryApp, Help: "Lists staged and installed packages.", Handler: h(a.cmdPackages)},
		{Name: "store", Category: registry.CategoryApp, Help: "Opens the App Store to find new packages.", Handler: h(a.cmdStore)},

		// Tools
		{Name: "net", Category: registry.CategoryTools, Help: "Network tools (ping, lookup, get).", Usage: netUsage, Handler: h(a.cmdNet)},
		{Name: "calc", Category: registry.CategoryTools, Help: "A simple calculator.", Usage: calcUsage, Handler: h(a.cmdCalc)},
		{Name: "calendar", Category: registry.CategoryTools, Help: "Displays a calendar for the current month.", Handler: h(a.cmdCalendar)},
		{Name: "roll", Category: registry.CategoryTools, Help: "Rolls a six-sided die.", Handler: h(a.cmdRoll)},
		{Name: "cowsay", Category: registry.CategoryTools, Help: "An ASCII cow says your message.", Usage: "cowsay [text]", Handler: h(a.cmdCowsay)},
		{Name: "joke", Category: registry.CategoryTools, Help: "Tells a random programming joke.", Handler: h(a.cmdJoke)},
	}
}
