package serializer

// StdoutURI is the special destination path indicating output should be
// written to stdout.
const StdoutURI = "-"
