package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgumentsContains(t *testing.T) {
	args := Arguments{"column": "body", "empty": ""}

	assert.True(t, args.Contains("column"))
	assert.True(t, args.Contains("empty"))
	assert.False(t, args.Contains("missing"))
}

func TestArgumentsList(t *testing.T) {
	t.Run("splits and trims", func(t *testing.T) {
		args := Arguments{"info-type": " EMAIL_ADDRESS , US_SOCIAL_SECURITY_NUMBER "}
		assert.Equal(t, []string{"EMAIL_ADDRESS", "US_SOCIAL_SECURITY_NUMBER"}, args.List("info-type"))
	})

	t.Run("drops empty entries", func(t *testing.T) {
		args := Arguments{"info-type": "EMAIL_ADDRESS,,"}
		assert.Equal(t, []string{"EMAIL_ADDRESS"}, args.List("info-type"))
	})

	t.Run("empty value yields nil", func(t *testing.T) {
		args := Arguments{"info-type": ""}
		assert.Nil(t, args.List("info-type"))
	})

	t.Run("absent argument yields nil", func(t *testing.T) {
		assert.Nil(t, Arguments{}.List("info-type"))
	})
}
