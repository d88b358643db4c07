// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"
	"time"

	"github.com/rentweb/crweb/pkg/adapter/config"
	"github.com/rentweb/crweb/pkg/adapter/db/postgres/schema"
	"github.com/rentweb/crweb/pkg/adapter/db/postgres/usersrp"
	"github.com/rentweb/crweb/pkg/adapter/hash/scram"
	"github.com/rentweb/crweb/pkg/core/model"
	"github.com/rentweb/crweb/pkg/core/repo"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For a fresh installation, the init sub-command creates the database
schema, including the exclusion constraint which rejects overlapping
confirmed or active bookings of one car, and registers the first
administrator account.`,
}

var adminEmail, adminPass string

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the database schema and the admin account",
	RunE:  initDatabase,
}

func initDatabase(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	err = p.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		if err := schema.Init(ctx, conn); err != nil {
			return fmt.Errorf("initializing schema: %w", err)
		}
		if adminEmail == "" {
			return nil
		}
		hashed, err := scram.SHA256().Hash(adminPass)
		if err != nil {
			return fmt.Errorf("hashing admin password: %w", err)
		}
		_, err = usersrp.New().Conn(conn).Create(ctx, &model.User{
			Name:          "Administrator",
			Email:         adminEmail,
			PasswordHash:  hashed,
			Phone:         "-",
			DateOfBirth:   time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			LicenseNumber: "ADMIN",
			Role:          model.RoleAdmin,
		})
		if err != nil {
			return fmt.Errorf("creating admin account: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Println("database initialized")
	return nil
}

func init() {
	dbInitCmd.Flags().StringVar(
		&adminEmail, "admin-email", "", "email of the first admin account",
	)
	dbInitCmd.Flags().StringVar(
		&adminPass, "admin-pass", "", "password of the first admin account",
	)
	dbInitCmd.MarkFlagsRequiredTogether("admin-email", "admin-pass")
	dbCmd.AddCommand(dbInitCmd)
	rootCmd.AddCommand(dbCmd)
}
