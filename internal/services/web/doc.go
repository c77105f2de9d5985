// Package web serves the archive desktop: the server-rendered shell page, the
// JSON listing API, asset and thumbnail bytes, and the synthesized sound cues.
//
// Item paths like /kovacs deep-link into a dossier or gallery. The client
// script in static keeps the address bar in sync as the visitor navigates.
package web
