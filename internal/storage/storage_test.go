package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("/white-noise/", "Rain Storm.MP3")
	assert.True(t, strings.HasPrefix(key, "white-noise/"))
	assert.True(t, strings.HasSuffix(key, ".mp3"))
	assert.NotEqual(t, key, ObjectKey("white-noise", "Rain Storm.MP3"))

	assert.False(t, strings.Contains(ObjectKey("", "a.wav"), "/"))
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "", endpointURL("", true))
	assert.Equal(t, "https://s3.local:9000", endpointURL("s3.local:9000", true))
	assert.Equal(t, "http://s3.local:9000", endpointURL("s3.local:9000", false))
	assert.Equal(t, "http://minio:9000", endpointURL("http://minio:9000", true))
}
