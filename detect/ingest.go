package detect

import (
	"log"

	"github.com/annolab/go-annotate/store"
)

// Commit replaces the full contents of the object store with a detection
// result set.  A new result completely supersedes the prior object set
// for the image, it is never merged.  Results whose class name is absent
// from the class map are dropped with a logged warning so one unknown
// label never poisons the commit
func Commit(st *store.Store, results []Result, classIDs map[string]int) {

	objects := make([]store.Object, 0, len(results))

	for _, res := range results {

		classID, ok := classIDs[res.ClassName]

		if !ok {
			log.Printf("detect: dropping result with unknown class %q", res.ClassName)
			continue
		}

		// reject boxes that normalize inside out
		if res.Box.X2 < res.Box.X1 || res.Box.Y2 < res.Box.Y1 {
			log.Printf("detect: dropping result with inverted box %+v", res.Box)
			continue
		}

		objects = append(objects, store.Object{
			Class:      classID,
			Box:        res.Box,
			Mask:       res.Mask,
			Confidence: res.Confidence,
		})
	}

	st.Replace(objects)
}
