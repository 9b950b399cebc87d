// Package client is a Go consumer of the PanelBoard frontend API. It mirrors
// what the browser app does: a session container tracking the signed-in user
// and a dashboard view loading the stats snapshot, with explicit loading and
// error states.
//
// All state lives in objects owned by the caller; nothing here is a package
// singleton. Fetches return cancellable handles so a torn-down view never
// receives a late write.
package client
