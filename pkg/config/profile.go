package config

import "github.com/epsg-core/powerlink/pkg/od"

// LoadDictionary builds a node's starting object dictionary from an
// ini profile, delegating to
// od.LoadProfile so callers outside pkg/od don't need to import it
// directly just to bootstrap a node.
func LoadDictionary(path string) (*od.ObjectDictionary, error) {
	return od.LoadProfile(path)
}
