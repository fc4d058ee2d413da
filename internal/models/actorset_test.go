package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActorSetToggleRoundTrip(t *testing.T) {
	set := ActorSet{}

	assert.True(t, set.Toggle("u1"))
	assert.True(t, set.Contains("u1"))
	assert.Equal(t, 1, set.Count())

	// Second toggle returns the set to its original membership
	assert.False(t, set.Toggle("u1"))
	assert.False(t, set.Contains("u1"))
	assert.Equal(t, 0, set.Count())
}

func TestActorSetAddIsIdempotent(t *testing.T) {
	set := ActorSet{}

	assert.True(t, set.Add("u1"))
	assert.False(t, set.Add("u1"))
	assert.Equal(t, 1, set.Count())
}

func TestActorSetScanValue(t *testing.T) {
	set := ActorSet{"a", "b"}
	v, err := set.Value()
	assert.NoError(t, err)

	var decoded ActorSet
	assert.NoError(t, decoded.Scan(v))
	assert.Equal(t, set, decoded)

	var empty ActorSet
	assert.NoError(t, empty.Scan(nil))
	assert.Equal(t, 0, empty.Count())
}

func TestThreadLikeDownvoteMutualExclusion(t *testing.T) {
	thread := Thread{}

	assert.True(t, thread.ToggleLike("u1"))
	assert.True(t, thread.Likes.Contains("u1"))

	// Downvoting removes the standing like
	assert.True(t, thread.ToggleDownvote("u1"))
	assert.True(t, thread.Downvotes.Contains("u1"))
	assert.False(t, thread.Likes.Contains("u1"))

	// And liking again removes the downvote
	assert.True(t, thread.ToggleLike("u1"))
	assert.True(t, thread.Likes.Contains("u1"))
	assert.False(t, thread.Downvotes.Contains("u1"))
}

func TestPollVoteExclusivity(t *testing.T) {
	thread := Thread{
		PostType: PostTypePoll,
		PollOptions: []PollOption{
			{Position: 0, Text: "Go", Votes: ActorSet{}},
			{Position: 1, Text: "Rust", Votes: ActorSet{}},
			{Position: 2, Text: "Zig", Votes: ActorSet{}},
		},
	}

	assert.True(t, thread.VoteOption(0, "u1"))
	assert.True(t, thread.PollOptions[0].Votes.Contains("u1"))

	// Voting a different option moves the vote
	assert.True(t, thread.VoteOption(2, "u1"))
	assert.False(t, thread.PollOptions[0].Votes.Contains("u1"))
	assert.True(t, thread.PollOptions[2].Votes.Contains("u1"))
	assert.Equal(t, 1, thread.TotalVotes())

	// Voting the same option again retracts it
	assert.False(t, thread.VoteOption(2, "u1"))
	assert.Equal(t, 0, thread.TotalVotes())

	// Out-of-range index is a no-op
	assert.False(t, thread.VoteOption(5, "u1"))
	assert.Equal(t, 0, thread.TotalVotes())
}
