package betty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDPath(t *testing.T) {
	assert.Equal(t, "1", IDPath(1))
	assert.Equal(t, "1234", IDPath(1234))
	assert.Equal(t, "1234/5", IDPath(12345))
	assert.Equal(t, "1234/5678/9", IDPath(123456789))
}

func TestCropURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8081/images/1234/5/original/600.jpg",
		CropURL("http://localhost:8081/images/", 12345, "", 600, ""))
	assert.Equal(t, "http://betty/1234/5/16x9/1200.png",
		CropURL("http://betty", 12345, "16x9", 1200, "png"))
}

func TestAnimatedURL(t *testing.T) {
	assert.Equal(t, "http://betty/1234/5/animated/original.gif", AnimatedURL("http://betty", 12345))
}
