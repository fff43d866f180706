package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rg-atte/rs-cache/cache"
	"github.com/rg-atte/rs-cache/common"
	"github.com/rg-atte/rs-cache/storage"
)

// InfoResponse is a json-marked-up structure for the info handler
type InfoResponse struct {
	AppName    string `json:"app_name"`
	NumIndices int    `json:"num_indices"`
}

func (s *Server) cacheInfo(r *http.Request) (interface{}, error) {
	return &InfoResponse{
		AppName:    "cacheserver",
		NumIndices: s.cache.IndexCount(),
	}, nil
}

func (s *Server) checksumTable(r *http.Request) ([]byte, error) {
	table, err := s.cache.Checksum()
	if err != nil {
		log.Errorf("error building checksum table: %s", err)
		return nil, common.NewHTTPError(http.StatusInternalServerError, "checksum build failed")
	}
	return table.Encode()
}

func (s *Server) archiveData(r *http.Request) ([]byte, error) {
	vars := mux.Vars(r)

	indexID, err := strconv.ParseUint(vars["index"], 10, 8)
	if err != nil {
		return nil, common.NewHTTPError(http.StatusBadRequest, "invalid index id: %s", vars["index"])
	}
	archiveID, err := strconv.ParseUint(vars["archive"], 10, 32)
	if err != nil {
		return nil, common.NewHTTPError(http.StatusBadRequest, "invalid archive id: %s", vars["archive"])
	}

	data, err := s.cache.ReadArchive(uint8(indexID), uint32(archiveID))
	switch {
	case err == nil:
		return data, nil
	case errors.Is(err, cache.ErrIndexNotFound), errors.Is(err, cache.ErrArchiveNotFound):
		return nil, common.NewHTTPError(http.StatusNotFound, "%s", err)
	case errors.Is(err, storage.ErrChainBroken), errors.Is(err, storage.ErrChainCycle):
		log.Errorf("corrupt archive %d/%d: %s", indexID, archiveID, err)
		return nil, common.NewHTTPError(http.StatusBadGateway, "corrupt archive chain")
	default:
		log.Errorf("error reading archive %d/%d: %s", indexID, archiveID, err)
		return nil, common.NewHTTPError(http.StatusInternalServerError, "archive read failed")
	}
}
