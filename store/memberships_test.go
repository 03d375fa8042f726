package store

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestMembershipCreateErrDuplicateKey(t *testing.T) {
	dup := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000}},
	}
	if got := membershipCreateErr(dup); !errors.Is(got, ErrAlreadyRequested) {
		t.Errorf("duplicate key: got %v, want ErrAlreadyRequested", got)
	}
}

func TestMembershipCreateErrPassthrough(t *testing.T) {
	other := errors.New("connection reset")
	if got := membershipCreateErr(other); !errors.Is(got, other) {
		t.Errorf("got %v, want the original error", got)
	}
}
