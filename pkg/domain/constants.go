package domain

// Blank is the tape symbol used for unwritten cells.
// It also denotes the empty input string on the command line.
const Blank Symbol = "_"
