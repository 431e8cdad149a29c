package scheduler

import (
	"fmt"
	"strings"

	"community-service/internal/ports/models"
)

// OptionShare is one option's slice of the total vote count
type OptionShare struct {
	Option     models.PollOption
	Percentage float64
}

// TallyResult summarizes a finished poll
type TallyResult struct {
	Total  uint
	Winner *models.PollOption
	Shares []OptionShare
}

// Tally sums the option counts and picks the winner. Ties resolve to the
// first maximum in option order; with zero total every share is 0.0.
func Tally(options []models.PollOption) TallyResult {
	result := TallyResult{
		Winner: models.LeadingOption(options),
		Shares: make([]OptionShare, len(options)),
	}
	for _, option := range options {
		result.Total += option.VoteCount
	}
	for i, option := range options {
		share := OptionShare{Option: option}
		if result.Total > 0 {
			share.Percentage = float64(option.VoteCount) / float64(result.Total) * 100
		}
		result.Shares[i] = share
	}
	return result
}

// FormatResult renders the notice body: total votes, winner and the
// per-option breakdown
func FormatResult(poll *models.Poll, tally TallyResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Poll %q has closed.\n", poll.Title)
	fmt.Fprintf(&b, "Total votes: %d\n", tally.Total)
	if tally.Winner != nil {
		fmt.Fprintf(&b, "Winner: %s (%d votes)\n", tally.Winner.Title, tally.Winner.VoteCount)
	}
	for _, share := range tally.Shares {
		fmt.Fprintf(&b, "- %s: %d votes (%.1f%%)\n",
			share.Option.Title, share.Option.VoteCount, share.Percentage)
	}
	return b.String()
}
