package mongoclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/neonflick/goapi/base/ptr"
)

func TestMakeBsonM(t *testing.T) {
	type PatchableListing struct {
		Title       *string `bson:"title,omitempty"`
		ConsumedCnt *int    `bson:"consumptionCount,omitempty"`
		Owner       string  `bson:"owner"`
		Currency    string  `bson:"currency"`
		internal    string  `bson:"internal"`
		Skipped     string  `bson:"-"`
	}

	patchable := &PatchableListing{}
	patchable.Title = ptr.String("")
	patchable.ConsumedCnt = ptr.Int(10)
	patchable.Currency = "SOL"
	patchable.internal = "x"
	patchable.Skipped = "y"

	updater, err := MakeBsonM(patchable)

	assert.NoError(t, err)
	assert.Equal(
		t,
		bson.M{
			"title":            "",
			"consumptionCount": 10,
			// owner is empty, so ignore
			"currency": "SOL",
		},
		updater,
	)
}

func TestMakeBsonMNotStruct(t *testing.T) {
	_, err := MakeBsonM("listing")
	assert.Equal(t, ErrNotStruct, err)
}
