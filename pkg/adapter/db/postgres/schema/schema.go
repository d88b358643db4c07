// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schema creates the database schema of the car rental
// system. The DDL enforces the persistence-level invariants which may
// not be left to the application code alone: the unique license
// plate, email, and license number fields, the strictly ordered
// booking interval, and the no-overlap exclusion constraint over the
// conflicting bookings of one car. The latter relies on the
// btree_gist extension, so the car id equality may participate in a
// GiST index beside the interval overlap operator.
package schema

import (
	"context"
	"fmt"

	"github.com/rentweb/crweb/pkg/core/repo"
)

// DDL contains the idempotent schema creation statements.
const DDL = `
CREATE EXTENSION IF NOT EXISTS btree_gist;

CREATE TABLE IF NOT EXISTS cars (
    cid uuid PRIMARY KEY,
    brand varchar(100) NOT NULL,
    model varchar(100) NOT NULL,
    year integer NOT NULL,
    color varchar(50) NOT NULL DEFAULT '',
    price_per_day double precision NOT NULL CHECK (price_per_day > 0),
    category varchar(20) NOT NULL,
    fuel_type varchar(20) NOT NULL,
    transmission varchar(20) NOT NULL,
    seats integer NOT NULL DEFAULT 5 CHECK (seats > 0),
    features jsonb NOT NULL DEFAULT '[]',
    image text NOT NULL DEFAULT '',
    is_available boolean NOT NULL DEFAULT TRUE,
    location varchar(100) NOT NULL DEFAULT '',
    license_plate varchar(20) NOT NULL UNIQUE,
    description varchar(500) NOT NULL DEFAULT '',
    created_at timestamptz NOT NULL DEFAULT now(),
    updated_at timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS users (
    uid uuid PRIMARY KEY,
    name varchar(100) NOT NULL,
    email varchar(100) NOT NULL UNIQUE,
    password_hash text NOT NULL,
    phone varchar(30) NOT NULL DEFAULT '',
    date_of_birth timestamptz,
    license_number varchar(30) NOT NULL UNIQUE,
    address varchar(200) NOT NULL DEFAULT '',
    profile_image text NOT NULL DEFAULT '',
    role varchar(10) NOT NULL DEFAULT 'customer',
    created_at timestamptz NOT NULL DEFAULT now(),
    updated_at timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS bookings (
    bid uuid PRIMARY KEY,
    user_id uuid NOT NULL REFERENCES users (uid),
    car_id uuid NOT NULL REFERENCES cars (cid),
    start_date timestamptz NOT NULL,
    end_date timestamptz NOT NULL,
    total_days integer NOT NULL CHECK (total_days > 0),
    total_amount double precision NOT NULL,
    status varchar(10) NOT NULL DEFAULT 'pending',
    pickup_location varchar(100) NOT NULL,
    dropoff_location varchar(100) NOT NULL,
    additional_drivers jsonb,
    special_requests varchar(500) NOT NULL DEFAULT '',
    payment_status varchar(10) NOT NULL DEFAULT 'pending',
    payment_method varchar(20) NOT NULL DEFAULT '',
    damage jsonb,
    mileage_before integer,
    mileage_after integer,
    fuel_level_before varchar(15),
    fuel_level_after varchar(15),
    created_at timestamptz NOT NULL DEFAULT now(),
    updated_at timestamptz NOT NULL DEFAULT now(),
    CONSTRAINT bookings_interval_order CHECK (start_date < end_date),
    CONSTRAINT bookings_no_overlap EXCLUDE USING gist (
        car_id WITH =,
        tstzrange(start_date, end_date, '[]') WITH &&
    ) WHERE (status IN ('confirmed', 'active'))
);

CREATE INDEX IF NOT EXISTS bookings_user_idx ON bookings (user_id);
CREATE INDEX IF NOT EXISTS bookings_car_status_idx
    ON bookings (car_id, status);
`

// Init creates the database schema contents, if they are absent.
func Init(ctx context.Context, c repo.Conn) error {
	if _, err := c.Exec(ctx, DDL); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
