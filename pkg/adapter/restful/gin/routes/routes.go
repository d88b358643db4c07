// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rentweb/crweb/pkg/adapter/config"
	"github.com/rentweb/crweb/pkg/adapter/db/postgres/bookingsrp"
	"github.com/rentweb/crweb/pkg/adapter/db/postgres/carsrp"
	"github.com/rentweb/crweb/pkg/adapter/db/postgres/usersrp"
	"github.com/rentweb/crweb/pkg/adapter/hash/scram"
	"github.com/rentweb/crweb/pkg/adapter/restful/gin/bookingsrs"
	"github.com/rentweb/crweb/pkg/adapter/restful/gin/carsrs"
	"github.com/rentweb/crweb/pkg/adapter/restful/gin/middleware"
	"github.com/rentweb/crweb/pkg/adapter/restful/gin/usersrs"
	"github.com/rentweb/crweb/pkg/core/repo"
	"github.com/rentweb/crweb/pkg/core/usecase/bookingsuc"
	"github.com/rentweb/crweb/pkg/core/usecase/carsuc"
	"github.com/rentweb/crweb/pkg/core/usecase/usersuc"
)

// Register instantiates relevant repositories and use cases based on
// the c configuration settings. The p connections pool is passed to
// the use case instances, so they may acquire/release connections
// and transactions on demand. These connections/transactions will be
// passed to the repositories later in order to run relevant queries
// on them and accomplish those use cases. Each use case package is
// named like carsuc and each repository package is named like carsrp.
// Register instantiates a series of "resource" structs, from packages
// which are named like carsrs, in order to adapt the use cases
// interfaces with the REST APIs. These resources are registered as
// request handlers using the e gin-gonic engine instance, under the
// public /api/crweb/v1 group or its bearer-token protected subgroup.
// Possible errors will be returned after possible wrapping.
func Register(e *gin.Engine, p repo.Pool, c *config.Config) error {
	carsRepo := carsrp.New()
	usersRepo := usersrp.New()
	bookingsRepo := bookingsrp.New()

	guard, err := c.TokenGuard()
	if err != nil {
		return fmt.Errorf("creating token guard: %w", err)
	}
	hasher := scram.SHA256()

	carsUseCase := carsuc.New(p, carsRepo)
	bookingsUseCase := bookingsuc.New(p, bookingsRepo, carsRepo)
	usersUseCase, err := usersuc.New(
		p, usersRepo, bookingsRepo, hasher, guard,
	)
	if err != nil {
		return fmt.Errorf("creating users use case: %w", err)
	}

	public := e.Group("/api/crweb/v1")
	auth := public.Group("", middleware.Authenticate(guard))
	carsrs.Register(public, auth, carsUseCase)
	usersrs.Register(public, auth, usersUseCase)
	bookingsrs.Register(auth, bookingsUseCase)
	return nil
}
