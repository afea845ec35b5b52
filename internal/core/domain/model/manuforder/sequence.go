package manuforder

import "strings"

// DraftSeqPrefix marks a placeholder sequence given to orders before they are planned.
const DraftSeqPrefix = "#"

// IsEmptyOrDraftSeq reports whether seq still has to be replaced by a real sequence number.
func IsEmptyOrDraftSeq(seq string) bool {
	seq = strings.TrimSpace(seq)
	return seq == "" || strings.HasPrefix(seq, DraftSeqPrefix)
}
