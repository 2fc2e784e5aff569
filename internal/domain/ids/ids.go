// Package ids produces and checks store keys. Keys are 24-character hex
// ObjectIDs regardless of the backing store, so a key minted by one store
// driver stays well-formed for every other.
package ids

import "go.mongodb.org/mongo-driver/v2/bson"

func New() string {
	return bson.NewObjectID().Hex()
}

func Valid(id string) bool {
	_, err := bson.ObjectIDFromHex(id)
	return err == nil
}
