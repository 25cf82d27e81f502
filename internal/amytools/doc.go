// Package amytools is the bundled extension. It contributes a ribbon icon,
// a status bar item, four commands, one secret setting, a click listener
// and a recurring timer.
package amytools
