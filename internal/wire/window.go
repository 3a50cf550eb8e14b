package wire

import (
	"unicode/utf8"

	"github.com/anthropics/anthropic-sdk-go"
)

// group is a contiguous span [start, end) of messages that must be sent
// whole: either a single message or an assistant tool_use message paired
// with the user message carrying its tool_result blocks.
type group struct {
	start int
	end   int
}

// Stats summarizes a window decision for diagnostics.
type Stats struct {
	Estimated int
	Budget    int
	Included  int
	Skipped   int
}

// perBlockOverhead keeps the estimate deterministic for structured blocks.
const perBlockOverhead = 4

// Window returns the newest suffix of msgs whose estimated cost fits budget,
// never splitting a tool pair. A budget <= 0 disables trimming. The newest
// group is always included even when it alone exceeds the budget; sending an
// oversized last turn beats sending nothing.
func Window(msgs []anthropic.MessageParam, budget int) ([]anthropic.MessageParam, Stats) {
	if budget <= 0 || len(msgs) == 0 {
		return msgs, Stats{Estimated: estimateAll(msgs), Budget: budget, Included: len(msgs)}
	}

	groups := groupPairs(msgs)
	total := 0
	cut := len(groups) // index of the oldest included group
	for gi := len(groups) - 1; gi >= 0; gi-- {
		cost := 0
		for i := groups[gi].start; i < groups[gi].end; i++ {
			cost += estimateMessage(msgs[i])
		}
		if gi < len(groups)-1 && total+cost > budget {
			break
		}
		total += cost
		cut = gi
	}

	stats := Stats{
		Estimated: total,
		Budget:    budget,
		Included:  len(groups) - cut,
		Skipped:   cut,
	}
	return msgs[groups[cut].start:], stats
}

// groupPairs walks msgs and fuses each assistant message containing tool_use
// blocks with the immediately following user message when that user message
// carries matching tool_result blocks.
func groupPairs(msgs []anthropic.MessageParam) []group {
	groups := make([]group, 0, len(msgs))
	for i := 0; i < len(msgs); {
		if msgs[i].Role == anthropic.MessageParamRoleAssistant && i+1 < len(msgs) &&
			msgs[i+1].Role == anthropic.MessageParamRoleUser {
			useIDs := toolUseIDs(msgs[i])
			if len(useIDs) > 0 && resultsCover(msgs[i+1], useIDs) {
				groups = append(groups, group{start: i, end: i + 2})
				i += 2
				continue
			}
		}
		groups = append(groups, group{start: i, end: i + 1})
		i++
	}
	return groups
}

func toolUseIDs(m anthropic.MessageParam) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, blk := range m.Content {
		if tu := blk.OfToolUse; tu != nil {
			ids[tu.ID] = struct{}{}
		}
	}
	return ids
}

// resultsCover reports whether m's tool_result blocks answer every id.
func resultsCover(m anthropic.MessageParam, ids map[string]struct{}) bool {
	seen := make(map[string]struct{})
	for _, blk := range m.Content {
		if tr := blk.OfToolResult; tr != nil {
			seen[tr.ToolUseID] = struct{}{}
		}
	}
	for id := range ids {
		if _, ok := seen[id]; !ok {
			return false
		}
	}
	return true
}

func estimateAll(msgs []anthropic.MessageParam) int {
	total := 0
	for _, m := range msgs {
		total += estimateMessage(m)
	}
	return total
}

// estimateMessage is a deterministic rune-based token estimate: text blocks
// count their runes, structured blocks a fixed overhead.
func estimateMessage(m anthropic.MessageParam) int {
	total := 0
	for _, blk := range m.Content {
		if tb := blk.OfText; tb != nil {
			total += utf8.RuneCountInString(tb.Text) + perBlockOverhead
			continue
		}
		if tr := blk.OfToolResult; tr != nil {
			for _, nb := range tr.Content {
				if nt := nb.OfText; nt != nil {
					total += utf8.RuneCountInString(nt.Text)
				}
			}
			total += perBlockOverhead
			continue
		}
		total += perBlockOverhead
	}
	return total
}
