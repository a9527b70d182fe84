package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeplay/internal/account"
	"github.com/SeamusWaldron/cubeplay/internal/session"
)

var (
	userName     string
	userPassword string
	userNewPass  string
	userQuestion string
	userAnswer   string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage player accounts",
	Long:  `Commands for registering players, changing or resetting passwords, and removing accounts.`,
}

var userRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new player",
	Long: `Register a new player. Anything not given as a flag is asked for.

The security question and answer are used to reset a forgotten password.
Answers are not case sensitive.`,
	RunE: runUserRegister,
}

var userPasswdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change a player's password",
	RunE:  runUserPasswd,
}

var userResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset a forgotten password",
	Long:  `Reset a forgotten password by answering the security question.`,
	RunE:  runUserReset,
}

var userRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a player",
	Long:  `Remove a player along with their saved game and attempt history. Leaderboard entries are kept.`,
	RunE:  runUserRemove,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List players",
	RunE:  runUserList,
}

func init() {
	rootCmd.AddCommand(userCmd)

	for _, c := range []*cobra.Command{userRegisterCmd, userPasswdCmd, userResetCmd, userRemoveCmd} {
		c.Flags().StringVarP(&userName, "username", "u", "", "Username")
		userCmd.AddCommand(c)
	}
	userCmd.AddCommand(userListCmd)

	userRegisterCmd.Flags().StringVar(&userPassword, "password", "", "Password")
	userRegisterCmd.Flags().StringVar(&userQuestion, "question", "", "Security question")
	userRegisterCmd.Flags().StringVar(&userAnswer, "answer", "", "Answer to the security question")

	userPasswdCmd.Flags().StringVar(&userPassword, "password", "", "Current password")
	userPasswdCmd.Flags().StringVar(&userNewPass, "new-password", "", "New password")

	userResetCmd.Flags().StringVar(&userAnswer, "answer", "", "Answer to the security question")
	userResetCmd.Flags().StringVar(&userNewPass, "new-password", "", "New password")

	userRemoveCmd.Flags().StringVar(&userPassword, "password", "", "Password")
}

func runUserRegister(cmd *cobra.Command, args []string) error {
	p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	name, err := p.value("Username", userName)
	if err != nil {
		return err
	}
	pass, err := p.confirmed("Password", userPassword)
	if err != nil {
		return err
	}
	question, err := p.value("Security question", userQuestion)
	if err != nil {
		return err
	}
	answer, err := p.confirmed("Answer", userAnswer)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := account.NewService(db).Register(name, pass, question, answer); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Registered %s\n", name)
	return nil
}

func runUserPasswd(cmd *cobra.Command, args []string) error {
	p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	name, err := p.value("Username", userName)
	if err != nil {
		return err
	}
	old, err := p.value("Current password", userPassword)
	if err != nil {
		return err
	}
	pass, err := p.confirmed("New password", userNewPass)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := account.NewService(db).ChangePassword(name, old, pass); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Password changed")
	return nil
}

func runUserReset(cmd *cobra.Command, args []string) error {
	p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	name, err := p.value("Username", userName)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	svc := account.NewService(db)
	question, err := svc.Question(name)
	if err != nil {
		return err
	}

	answer, err := p.value(question, userAnswer)
	if err != nil {
		return err
	}
	if err := svc.CheckAnswer(name, answer); err != nil {
		return err
	}
	pass, err := p.confirmed("New password", userNewPass)
	if err != nil {
		return err
	}

	if err := svc.ResetPassword(name, answer, pass); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Password reset")
	return nil
}

func runUserRemove(cmd *cobra.Command, args []string) error {
	p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	name, err := p.value("Username", userName)
	if err != nil {
		return err
	}
	pass, err := p.value("Password", userPassword)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := account.NewService(db).Remove(name, pass); err != nil {
		return err
	}

	if sf, err := session.NewDefaultStateFile(); err == nil && sf.LastUser() == name {
		if err := sf.ClearLastUser(); err != nil {
			log.WithError(err).Warn("failed to update state file")
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", name)
	return nil
}

func runUserList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	names, err := account.NewService(db).List()
	if err != nil {
		return err
	}

	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No players registered. Use 'cubeplay user register' to add one.")
		return nil
	}
	for _, n := range names {
		fmt.Fprintln(cmd.OutOrStdout(), n)
	}
	return nil
}
