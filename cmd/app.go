package cmd

import (
	"github.com/PF6771/eien-invoice/internal/config"
	"github.com/PF6771/eien-invoice/internal/ledger"
	"github.com/PF6771/eien-invoice/internal/render"
	"github.com/PF6771/eien-invoice/internal/store"
)

// app bundles the wired-up collaborators every command needs: the parsed
// configuration, the ledger service over the loaded document, and the
// renderer carrying the company identity.
type app struct {
	cfg  *config.Config
	svc  *ledger.Service
	rend *render.Renderer
}

// newApp loads configuration and the persisted ledger. A corrupt data file
// fails here, before any command logic runs, and the file is left as-is.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	st := store.New(cfg.DataFile)
	doc, err := st.Load()
	if err != nil {
		return nil, err
	}

	return &app{
		cfg: cfg,
		svc: ledger.NewService(doc, st),
		rend: render.New(render.Company{
			Name:        cfg.CompanyName,
			Address:     cfg.CompanyAddress,
			ZelleLine:   cfg.ZelleLine,
			ZelleQRNote: cfg.ZelleQRNote,
			LogoPath:    cfg.LogoPath,
		}),
	}, nil
}
