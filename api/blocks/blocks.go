// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocks

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/tinybank/tinybank/api/utils"
	"github.com/tinybank/tinybank/chain"
)

type Blocks struct {
	chain *chain.Chain
}

func New(chain *chain.Chain) *Blocks {
	return &Blocks{chain}
}

func (b *Blocks) handleGetBlock(w http.ResponseWriter, req *http.Request) error {
	revision, err := utils.ParseRevision(mux.Vars(req)["revision"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "revision"))
	}
	receipt, err := b.chain.Receipt(revision.Number(b.chain.BestNumber()))
	if err != nil {
		if chain.IsNotFound(err) {
			return utils.WriteJSON(w, nil)
		}
		return err
	}
	return utils.WriteJSON(w, ConvertReceipt(receipt))
}

func (b *Blocks) handleGetGenesis(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, utils.M{
		"id":   b.chain.GenesisID().String(),
		"best": b.chain.BestNumber(),
	})
}

func (b *Blocks) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/genesis").
		Methods(http.MethodGet).
		Name("blocks_get_genesis").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetGenesis))
	sub.Path("/{revision}").
		Methods(http.MethodGet).
		Name("blocks_get_block").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetBlock))
}
