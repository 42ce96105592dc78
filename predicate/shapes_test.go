package predicate

import (
	"time"

	"github.com/google/uuid"

	"github.com/datazip-inc/sieve/types"
)

type Address struct {
	City    string `json:"city"`
	ZipCode *int   `json:"zip_code"`
}

type Audit struct {
	CreatedBy string
}

type Extra struct {
	Note string
}

type credentials struct {
	Token string
}

type Person struct {
	ID       uuid.UUID
	Name     string `json:"full_name"`
	Nickname *string
	Age      int
	Height   uint16
	Score    float64
	Active   bool
	Initial  types.Char
	BornAt   time.Time
	LastSeen *time.Time
	Tags     []string
	Scores   []int
	Aliases  []*string
	Address  *Address
	Home     Address
	Labels   map[string]string
	Payload  any
	secret   string

	Audit
	*Extra
	credentials
}

func ptr[T any](v T) *T {
	return &v
}
