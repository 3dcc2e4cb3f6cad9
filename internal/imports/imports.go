package imports

import (
	// Engine packages register themselves with the registry on import.
	// The shellcmd engine is constructed from configuration instead, so it
	// is not imported here.
	_ "github.com/sammcj/pdfsection/internal/engines/pdfcpucut"
	_ "github.com/sammcj/pdfsection/internal/engines/pdftk"
	_ "github.com/sammcj/pdfsection/internal/engines/qpdf"
)
