package excel

// ReaderConfig describes how sequences are laid out in a file
type ReaderConfig struct {
	FilePath string
	// Sheet is the worksheet read from .xlsx files
	Sheet string
	// Labels treats the first cell of each row (or the header of each
	// column) as the sequence key
	Labels bool
	// Columns reads one sequence per column instead of per row. The first
	// row then holds the keys when Labels is set.
	Columns bool
}

// DefaultSheet is the worksheet read when none is configured
const DefaultSheet = "Sheet1"
