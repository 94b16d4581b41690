package redis

import "fmt"

const keyPrefix = "bookmarkd"

// DocumentKey returns the Redis key holding one owner's document blob.
func DocumentKey(owner string) string {
	return fmt.Sprintf("%s:doc:%s", keyPrefix, owner)
}

// OwnersKey returns the Redis key of the set of all owners.
func OwnersKey() string {
	return fmt.Sprintf("%s:owners", keyPrefix)
}
