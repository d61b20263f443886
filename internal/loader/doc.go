// Package loader discovers retail transaction workbooks and parses their
// sheets into the unified transaction dataset. Sheets are matched by header
// content, not by name, so workbooks with differently named or extra sheets
// load without configuration.
package loader
