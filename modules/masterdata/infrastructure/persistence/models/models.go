package models

import "github.com/jackc/pgx/v5/pgtype"

type RTO struct {
	ID            string
	RTOCode       pgtype.Text
	City          pgtype.Text
	State         pgtype.Text
	SearchString  pgtype.Text
	DisplayString pgtype.Text
}

type MMV struct {
	ID               string
	ProductID        int32
	Make             pgtype.Text
	Model            pgtype.Text
	Variant          pgtype.Text
	FuelType         pgtype.Text
	CC               pgtype.Int4
	BodyType         pgtype.Text
	SeatingCapacity  pgtype.Int4
	CarryingCapacity pgtype.Int4
	EnsureditID      pgtype.Text
}

type Pincode struct {
	Pincode  string
	District pgtype.Text
	City     pgtype.Text
	State    pgtype.Text
}
