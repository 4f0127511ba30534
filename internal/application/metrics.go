package application

import "expvar"

// Published on /api/debug/vars.
var (
	likesToggled  = expvar.NewInt("likes_toggled")
	songsUploaded = expvar.NewInt("songs_uploaded")
)
