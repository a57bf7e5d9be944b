package align

import (
	"fmt"
	"regexp"
	"strconv"
)

var segmentInfoPattern = regexp.MustCompile(`start-segment-(\d+)\[start=(\d+),end=(\d+)`)

// segmentInfo is one "start-segment-N[start=X,end=Y]" match extracted from
// a CTM row's segment_info column, plus the row it was found on.
type segmentInfo struct {
	// Row is the index into the CTM table the match came from.
	Row int
	// SegNum is the running segment number N.
	SegNum int
	// StartIdx/EndIdx are word indices (within the statement-match
	// index space) bounding the segment.
	StartIdx int
	EndIdx int
	// WordID is the CTM row's own word id, used by the labeler to
	// compute the offset between the segment's local indices and the
	// CTM table's row positions.
	WordID int
}

// parseSegmentInfo extracts one segmentInfo record per regex match found
// across all of a CTM table's segment_info values, in row order. A single
// row's segment_info can contain more than one match when several Kaldi
// segments begin at the same CTM row.
func parseSegmentInfo(ctm *CTM) ([]segmentInfo, error) {
	var out []segmentInfo
	for row, s := range ctm.SegmentInfo {
		if s == "" {
			continue
		}
		for _, m := range segmentInfoPattern.FindAllStringSubmatch(s, -1) {
			segNum, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, newErr(InvariantViolation, "align.parseSegmentInfo", fmt.Errorf("segment number: %w", err))
			}
			startIdx, err := strconv.Atoi(m[2])
			if err != nil {
				return nil, newErr(InvariantViolation, "align.parseSegmentInfo", fmt.Errorf("segment start: %w", err))
			}
			endIdx, err := strconv.Atoi(m[3])
			if err != nil {
				return nil, newErr(InvariantViolation, "align.parseSegmentInfo", fmt.Errorf("segment end: %w", err))
			}
			out = append(out, segmentInfo{
				Row:      row,
				SegNum:   segNum,
				StartIdx: startIdx,
				EndIdx:   endIdx,
				WordID:   ctm.WordID[row],
			})
		}
	}
	return out, nil
}
