package nas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimIDPrefix(t *testing.T) {
	assert.Equal(t, "DEMVAB1234567890", TrimIDPrefix("urn:adv:oid:DEMVAB1234567890"))
	// Already-trimmed values pass through unchanged.
	assert.Equal(t, "DEMVAB1234567890", TrimIDPrefix(TrimIDPrefix("urn:adv:oid:DEMVAB1234567890")))
	assert.Equal(t, "plain", TrimIDPrefix("plain"))
	assert.Equal(t, "", TrimIDPrefix(""))
}

func TestTrimCRSPrefix(t *testing.T) {
	assert.Equal(t, "ETRS89_UTM33", TrimCRSPrefix("urn:adv:crs:ETRS89_UTM33"))
	assert.Equal(t, "ETRS89_UTM33", TrimCRSPrefix("ETRS89_UTM33"))
	// The id prefix is not the crs prefix.
	assert.Equal(t, "urn:adv:oid:123", TrimCRSPrefix("urn:adv:oid:123"))
}
