package repoargs

import "github.com/google/uuid"

type PackageFields struct {
	Service      string
	Tier         string
	Title        string
	Price        int64
	DeliveryDays *int32
	Hours        string
	Locations    string
	Revisions    string
	Includes     string
	Addons       string
}

type CreatePackage struct {
	PackageFields
	SellerID uuid.UUID
}

type UpdatePackage struct {
	PackageFields
	ID     uuid.UUID
	Active bool
}

type PackageFilter struct {
	Service string
	Tier    string
}
