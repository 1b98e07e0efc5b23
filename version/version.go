package version

// Version is the release version reported by -v.
const Version = "1.1.0"
