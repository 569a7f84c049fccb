package nas

import (
	"strings"

	"github.com/antchfx/xmlquery"
	"go.uber.org/zap"
)

// removeBrokenMembers detaches feature members containing a gml:pos element
// whose text holds a single coordinate value. Such positions mark a corrupt
// feature; geometry decoding downstream would fail on them or silently
// produce wrong geometry, so they are cut out of the tree beforehand.
// The tree is mutated in place.
func removeBrokenMembers(doc *xmlquery.Node, ns map[string]string) error {
	primary, fallback := memberPaths("")

	members, err := findElements(doc, primary, ns)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		members, err = findElements(doc, fallback, ns)
		if err != nil {
			return err
		}
	}

	var removed int
	for _, member := range members {
		positions, err := findElements(member, ".//gml:pos", ns)
		if err != nil {
			return err
		}
		for _, pos := range positions {
			if len(strings.Fields(pos.InnerText())) != 1 {
				continue
			}
			xmlquery.RemoveFromTree(member)
			removed++
			// Remaining positions of a detached member are irrelevant.
			break
		}
	}

	if removed > 0 {
		zap.L().Warn("nas: removed members with malformed positions", zap.Int("removed", removed))
	}
	return nil
}
