package referralstatus_test

import (
	"testing"

	"github.com/jcpaschoal/autonet/business/types/referralstatus"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Parallel()

	assert.True(t, referralstatus.Pending.CanTransition(referralstatus.Accepted))
	assert.True(t, referralstatus.Pending.CanTransition(referralstatus.Declined))
	assert.True(t, referralstatus.Accepted.CanTransition(referralstatus.Completed))
	assert.False(t, referralstatus.Pending.CanTransition(referralstatus.Completed))
	assert.False(t, referralstatus.Completed.CanTransition(referralstatus.Pending))
	assert.False(t, referralstatus.Declined.CanTransition(referralstatus.Accepted))

	assert.True(t, referralstatus.Completed.IsFinal())
	assert.True(t, referralstatus.Declined.IsFinal())
	assert.False(t, referralstatus.Pending.IsFinal())
}

func TestParse(t *testing.T) {
	t.Parallel()

	s, err := referralstatus.Parse("ACCEPTED")
	assert.NoError(t, err)
	assert.Equal(t, referralstatus.Accepted, s)

	_, err = referralstatus.Parse("accepted")
	assert.Error(t, err)
}
