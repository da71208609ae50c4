package entity

import "time"

// Asset describes one stored file in the asset store.
type Asset struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}
