package domain

// DefaultCatalog is the theme catalog installed by cmd/seed and used by the in-memory store.
// Ids are fixed so clients and fixtures can refer to them across environments.
func DefaultCatalog() []Theme {
	return []Theme{
		{ID: "0b6f7c1e-4a43-4a8e-9d4c-1f0e6a3b2c01", Name: "Technology"},
		{ID: "0b6f7c1e-4a43-4a8e-9d4c-1f0e6a3b2c02", Name: "Science"},
		{ID: "0b6f7c1e-4a43-4a8e-9d4c-1f0e6a3b2c03", Name: "Art"},
		{ID: "0b6f7c1e-4a43-4a8e-9d4c-1f0e6a3b2c04", Name: "Music"},
		{ID: "0b6f7c1e-4a43-4a8e-9d4c-1f0e6a3b2c05", Name: "Sports"},
		{ID: "0b6f7c1e-4a43-4a8e-9d4c-1f0e6a3b2c06", Name: "Travel"},
		{ID: "0b6f7c1e-4a43-4a8e-9d4c-1f0e6a3b2c07", Name: "Food"},
		{ID: "0b6f7c1e-4a43-4a8e-9d4c-1f0e6a3b2c08", Name: "Health"},
		{ID: "0b6f7c1e-4a43-4a8e-9d4c-1f0e6a3b2c09", Name: "Business"},
		{ID: "0b6f7c1e-4a43-4a8e-9d4c-1f0e6a3b2c10", Name: "Gaming"},
	}
}
