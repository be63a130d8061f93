package cmd

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/vibast-solutions/ms-go-internship/app/repository"
	"github.com/vibast-solutions/ms-go-internship/app/service"
	"github.com/vibast-solutions/ms-go-internship/config"

	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage administrator accounts",
}

var adminEnsureCmd = &cobra.Command{
	Use:   "ensure",
	Short: "Create the configured admin account or repair its password",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, accounts, conn, err := newAccountServiceForAdminCommands()
		if err != nil {
			return err
		}
		defer conn.Close()

		action, err := accounts.EnsureAdmin(context.Background(), cfg.Admin)
		if err != nil {
			return err
		}
		fmt.Printf("username: %s\n", cfg.Admin.Username)
		fmt.Printf("action: %s\n", action)
		return nil
	},
}

var adminSetPasswordCmd = &cobra.Command{
	Use:   "set-password <username>",
	Short: "Set a user's password, read from stdin",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		_, accounts, conn, err := newAccountServiceForAdminCommands()
		if err != nil {
			return err
		}
		defer conn.Close()

		fmt.Fprint(os.Stderr, "New password: ")
		password, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && password == "" {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(password, "\r\n")
		if password == "" {
			return errors.New("password must not be empty")
		}

		if err := accounts.SetPassword(context.Background(), args[0], password); err != nil {
			return err
		}
		fmt.Printf("password updated for %s\n", args[0])
		return nil
	},
}

func init() {
	adminCmd.AddCommand(adminEnsureCmd)
	adminCmd.AddCommand(adminSetPasswordCmd)
	rootCmd.AddCommand(adminCmd)
}

func newAccountServiceForAdminCommands() (*config.Config, service.AccountService, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := configureLogging(cfg); err != nil {
		return nil, nil, nil, err
	}

	conn, err := openDB(cfg, cfg.DSN())
	if err != nil {
		return nil, nil, nil, err
	}

	gw := repository.NewGateway(conn, cfg.MySQL.Database)
	accounts := service.NewAccountService(
		repository.NewUserRepository(gw),
		repository.NewStudentRepository(gw),
		repository.NewCompanyRepository(gw),
		service.NewLogMailer(),
		cfg.Password,
	)
	return cfg, accounts, conn, nil
}
