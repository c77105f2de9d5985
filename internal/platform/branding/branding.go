// Package branding holds the product names shown across every surface.
package branding

// AppName is the product name used in titles and server metadata.
const AppName = "ART//ARCHIVE"

// Tagline is the page description and the MCP server title.
const Tagline = "NanoTrasen Directorate secure operating system"

// Bootloader heads the boot sequence.
const Bootloader = "NANOTRASEN SECURE BOOTLOADER v2.4.1"

// Directorate is the lock screen caption.
const Directorate = "NANOTRASEN DIRECTORATE // KC-14"
