package main

// TruncateURL exposes truncateURL for testing.
var TruncateURL = truncateURL
