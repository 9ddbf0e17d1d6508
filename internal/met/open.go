package met

// Open reads a grid file into a Dataset. The native NetCDF decode engine is
// tried first; when it rejects the file the generic JSON grid decoder gets a
// single fallback attempt, after which its error surfaces to the caller
// unchanged. There are no automatic retries beyond that one fallback.
func Open(path string) (*Dataset, error) {
	ds, err := openNetCDF(path)
	if err == nil {
		return ds, nil
	}
	return openJSON(path)
}
