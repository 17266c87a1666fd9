package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Fingerprint identifies the shape of a graph: node identities and links in
// order. Two graphs with equal fingerprints project to the same rows.
func Fingerprint(graph Data) string {
	h := sha256.New()
	write := func(parts ...string) {
		for _, p := range parts {
			h.Write([]byte(strconv.Quote(p)))
		}
		h.Write([]byte{'\n'})
	}
	for _, n := range graph.Nodes {
		write("n", n.ID, n.Name, n.CategoryID, strconv.Itoa(n.ConnectionCount))
	}
	for _, l := range graph.Links {
		write("l", l.Source, l.Target)
	}
	return hex.EncodeToString(h.Sum(nil))
}
