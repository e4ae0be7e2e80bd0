package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"newsdesk/internal/auth"
	"newsdesk/internal/service"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var userCreateFlags struct {
	Username string
	Email    string
	Password string
	Admin    bool
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		users, closeStores, err := userServiceFromConfig(cmd)
		if err != nil {
			return err
		}
		defer closeStores()

		user, err := users.CreateUser(cmd.Context(), userCreateFlags.Username, userCreateFlags.Email, userCreateFlags.Password, userCreateFlags.Admin)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		logger.WithField("admin", user.IsAdmin).Infof("created user %s (%s)", user.Email, user.ID)
		return nil
	},
}

var userPromoteFlags struct {
	Email  string
	Revoke bool
}

var userPromoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Grant or revoke admin rights",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		users, closeStores, err := userServiceFromConfig(cmd)
		if err != nil {
			return err
		}
		defer closeStores()

		user, err := users.SetAdmin(cmd.Context(), userPromoteFlags.Email, !userPromoteFlags.Revoke)
		if err != nil {
			return fmt.Errorf("promote user: %w", err)
		}
		logger.WithField("admin", user.IsAdmin).Infof("updated user %s", user.Email)
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&userCreateFlags.Username, "username", "", "Display name")
	userCreateCmd.Flags().StringVar(&userCreateFlags.Email, "email", "", "Login email")
	userCreateCmd.Flags().StringVar(&userCreateFlags.Password, "password", "", "Login password")
	userCreateCmd.Flags().BoolVar(&userCreateFlags.Admin, "admin", false, "Grant admin rights")
	_ = userCreateCmd.MarkFlagRequired("username")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("password")

	userPromoteCmd.Flags().StringVar(&userPromoteFlags.Email, "email", "", "Email of the user to update")
	userPromoteCmd.Flags().BoolVar(&userPromoteFlags.Revoke, "revoke", false, "Revoke admin rights instead of granting them")
	_ = userPromoteCmd.MarkFlagRequired("email")

	userCmd.AddCommand(userCreateCmd, userPromoteCmd)
	rootCmd.AddCommand(userCmd)
}

func userServiceFromConfig(cmd *cobra.Command) (service.UserService, func(), error) {
	st, err := openStores(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, err
	}
	closeStores := func() {
		if err := st.close(cmd.Context()); err != nil {
			logger.Warnf("close database: %v", err)
		}
	}

	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		closeStores()
		return nil, nil, fmt.Errorf("setup tokens: %w", err)
	}
	return service.NewUserService(st.users, auth.NewPasswordHasher(cfg.Auth.BcryptCost), tokens), closeStores, nil
}
