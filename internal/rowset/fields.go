package rowset

// Candidate column names for each logical field, in resolution order.
// These track the header variants observed across wilkerstat tagging exports
// and the daftar-desa registry workbooks; matching is case-insensitive.
var (
	// VillageColumns name the village ("desa") field.
	VillageColumns = []string{
		"desa",
		"nama desa",
		"nama_desa",
		"nm_desa",
		"name",
		"nama",
		"nama desa (desa/kel)",
	}

	// SubDistrictColumns name the sub-district ("kecamatan") field.
	SubDistrictColumns = []string{
		"kecamatan",
		"nama kecamatan",
		"kec",
		"nm_kecamatan",
		"nama_kec",
		"nama kec",
		"kecamatan/desa",
	}

	// DistrictColumns name the district ("kabupaten") field.
	DistrictColumns = []string{
		"kabupaten",
		"kabupaten/kota",
		"kab/kota",
		"kab kota",
		"kabupaten kota",
		"kabkota",
		"nama kabupaten",
		"kab",
		"kabupaten_kota",
	}

	// LatitudeColumns name the latitude field.
	LatitudeColumns = []string{
		"lat",
		"latitude",
		"lintang",
		"y",
		"koordinat_lat",
		"latitude (y)",
	}

	// LongitudeColumns name the longitude field.
	LongitudeColumns = []string{
		"lon",
		"lng",
		"longitude",
		"bujur",
		"x",
		"koordinat_lon",
		"longitude (x)",
	}

	// CombinedCoordColumns name a single "lat, lon" field.
	CombinedCoordColumns = []string{
		"koordinat",
		"coordinate",
		"coord",
		"coordinates",
	}

	// RegistryVillageColumns name the canonical village field in registry records.
	RegistryVillageColumns = []string{
		"nama_desa",
		"nama",
		"desa",
		"nama desa",
	}

	// RegistrySubDistrictColumns name the canonical sub-district field in
	// registry records.
	RegistrySubDistrictColumns = []string{
		"nama_kecamatan",
		"kecamatan",
		"kec",
		"kecamatan_name",
		"kecamatan_nama",
	}

	// RegistryWorkloadColumns name the expected workload ("muatan") field.
	RegistryWorkloadColumns = []string{
		"jumlah_muatan_usaha_wilkerstat",
		"muatan",
		"jumlah_muatan",
	}
)
