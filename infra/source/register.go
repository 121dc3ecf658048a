package source

import coresource "github.com/kilianp07/haulplan/core/source"

func init() {
	_ = coresource.Register("csv", newCSVDecoder)
	_ = coresource.Register("json", func(map[string]any) (coresource.Decoder, error) {
		return JSONDecoder{}, nil
	})
	_ = coresource.Register("xlsx", newXLSXDecoder)
}
