package met

// AliasEntry maps one canonical variable name to the known aliases weather
// model outputs use for it, in match-priority order.
type AliasEntry struct {
	Canonical string
	Aliases   []string
}

// AliasTable is an ordered alias-to-canonical-name configuration. It is a
// plain value passed into Normalize, not package state, so multiple model
// conventions can coexist in one process.
type AliasTable []AliasEntry

// DefaultAliases returns the standard table covering common GRIB short names
// and long-form NetCDF names for the five canonical channels.
func DefaultAliases() AliasTable {
	return AliasTable{
		{Canonical: "u", Aliases: []string{"u", "UGRD", "u_wind"}},
		{Canonical: "v", Aliases: []string{"v", "VGRD", "v_wind"}},
		{Canonical: "w", Aliases: []string{"w", "W", "W_wind", "VVEL"}},
		{Canonical: "t", Aliases: []string{"t", "TMP", "temperature"}},
		{Canonical: "z", Aliases: []string{"z", "HGT", "geopotential_height"}},
	}
}

// Normalize renames data variables to their canonical keys. For each table
// entry the first alias present in the dataset wins; canonical names with no
// alias present are simply left unset. Returns a renamed copy, leaving the
// receiver untouched.
func (d *Dataset) Normalize(table AliasTable) *Dataset {
	renamed := d.shallowClone()
	for _, entry := range table {
		for _, alias := range entry.Aliases {
			v, ok := renamed.Vars[alias]
			if !ok {
				continue
			}
			if alias != entry.Canonical {
				delete(renamed.Vars, alias)
				renamed.Vars[entry.Canonical] = v
			}
			break
		}
	}
	return renamed
}
