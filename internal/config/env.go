package config

import "os"

// envLookup is swappable in tests.
var envLookup = os.Getenv
