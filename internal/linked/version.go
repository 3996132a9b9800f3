package linked

import (
	"github.com/voltlang/voltlink/internal/version"
)

// CombinedVersion builds the complete cache key for a consumer that looked
// at every member of the class: the class-level version combined with each
// member's version in projection order. It exists so callers do not
// hand-roll the combination and forget a part; a consumer that only
// consults some members should call version.CacheKey with exactly the
// tokens it consulted instead.
//
// The result is absent if the class version or any member version is
// absent, which correctly forces recomputation.
func (c *Class) CombinedVersion() version.Token {
	members := make([]version.Token, 0,
		len(c.staticMethods)+len(c.instanceMethods)+len(c.abstractMethods)+len(c.exportedMembers))
	for _, m := range c.staticMethods {
		members = append(members, m.Version)
	}
	for _, m := range c.instanceMethods {
		members = append(members, m.Version)
	}
	for _, m := range c.abstractMethods {
		members = append(members, m.Version)
	}
	for _, m := range c.exportedMembers {
		members = append(members, m.Version)
	}
	return version.CacheKey(c.classVersion, members...)
}
