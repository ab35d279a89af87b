package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/nestgraph/pkg/history"
	"github.com/matzehuels/nestgraph/pkg/model"
	"github.com/matzehuels/nestgraph/pkg/netio"
	"github.com/matzehuels/nestgraph/pkg/network"
)

// NodeResponse is a node in its db shape plus derived state.
type NodeResponse struct {
	Index       int    `json:"index"`
	ElementType string `json:"elementType,omitempty"`
	network.NodeDescription
}

// ConnectionResponse is a connection in its db shape plus its position.
type ConnectionResponse struct {
	Index int `json:"index"`
	network.ConnectionDescription
}

// RecordablesResponse lists the channels a multimeter may record.
type RecordablesResponse struct {
	Recordables []string `json:"recordables"`
	RecordFrom  []string `json:"recordFrom"`
}

// HistoryResponse is the network after a history move.
type HistoryResponse struct {
	Revision  int                 `json:"revision"`
	Revisions int                 `json:"revisions"`
	Network   network.Description `json:"network"`
}

type modelRequest struct {
	Model string `json:"model"`
}

type sizeRequest struct {
	Size int `json:"size"`
}

type valueRequest struct {
	Value float64 `json:"value"`
}

type polarityRequest struct {
	Term string `json:"term"`
}

type recordFromRequest struct {
	RecordFrom []string `json:"recordFrom"`
}

func nodeResponse(n *network.Node) NodeResponse {
	return NodeResponse{Index: n.Index(), ElementType: n.ElementType(), NodeDescription: n.Describe()}
}

func connectionResponse(c *network.Connection) ConnectionResponse {
	return ConnectionResponse{Index: c.Index(), ConnectionDescription: c.Describe()}
}

func (s *Server) handleGetNetwork(w http.ResponseWriter, r *http.Request) {
	target, err := network.ParseTarget(r.URL.Query().Get("target"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.net.MarshalTarget(target)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondRaw(w, http.StatusOK, data)
}

func (s *Server) handlePutNetwork(w http.ResponseWriter, r *http.Request) {
	var desc network.Description
	if err := decodeJSON(w, r, &desc); err != nil {
		s.respondError(w, err)
		return
	}
	if err := netio.Validate(&desc); err != nil {
		s.respondError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.net.Update(desc); err != nil {
		s.respondError(w, err)
		return
	}
	s.history.Commit(s.net)
	s.respondJSON(w, http.StatusOK, s.net.Describe())
}

func (s *Server) handleDeleteNetwork(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.net.Empty()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProblems(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	problems := []string{}
	for _, p := range s.net.Problems() {
		problems = append(problems, p.Error())
	}
	s.respondJSON(w, http.StatusOK, map[string][]string{"problems": problems})
}

func (s *Server) handleListNodes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	nodes := make([]NodeResponse, 0, s.net.NodeCount())
	for _, n := range s.net.Nodes() {
		nodes = append(nodes, nodeResponse(n))
	}
	s.respondJSON(w, http.StatusOK, nodes)
}

func (s *Server) handleAddNode(w http.ResponseWriter, r *http.Request) {
	var desc network.NodeDescription
	if err := decodeJSON(w, r, &desc); err != nil {
		s.respondError(w, err)
		return
	}
	if err := netio.ValidateNode(&desc); err != nil {
		s.respondError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	node := s.net.AddNode(desc)
	s.respondJSON(w, http.StatusCreated, nodeResponse(node))
}

func (s *Server) handleGetNode(w http.ResponseWriter, r *http.Request, n *network.Node) {
	s.respondJSON(w, http.StatusOK, nodeResponse(n))
}

func (s *Server) handleDeleteNode(w http.ResponseWriter, r *http.Request, n *network.Node) {
	if err := s.net.DeleteNode(n); err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetModel(w http.ResponseWriter, r *http.Request, n *network.Node) {
	var req modelRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	if err := n.SetModel(req.Model); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, nodeResponse(n))
}

func (s *Server) handleSetSize(w http.ResponseWriter, r *http.Request, n *network.Node) {
	var req sizeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	if err := n.SetSize(req.Size); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, nodeResponse(n))
}

func (s *Server) handleSetNodeParam(w http.ResponseWriter, r *http.Request, n *network.Node) {
	var req valueRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	if err := n.SetParameter(chi.URLParam(r, "id"), req.Value); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, nodeResponse(n))
}

func (s *Server) handleResetNode(w http.ResponseWriter, r *http.Request, n *network.Node) {
	if err := n.ResetParameters(); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, nodeResponse(n))
}

func (s *Server) handlePolarity(w http.ResponseWriter, r *http.Request, n *network.Node) {
	var req polarityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	if err := n.SetWeightPolarity(req.Term); err != nil {
		s.respondError(w, err)
		return
	}
	conns := []ConnectionResponse{}
	for _, c := range n.Outgoing() {
		conns = append(conns, connectionResponse(c))
	}
	s.respondJSON(w, http.StatusOK, conns)
}

func (s *Server) handleRecordables(w http.ResponseWriter, r *http.Request, n *network.Node) {
	resp := RecordablesResponse{Recordables: n.Recordables(), RecordFrom: n.RecordFrom()}
	if resp.Recordables == nil {
		resp.Recordables = []string{}
	}
	if resp.RecordFrom == nil {
		resp.RecordFrom = []string{}
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetRecordFrom(w http.ResponseWriter, r *http.Request, n *network.Node) {
	var req recordFromRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	if err := n.SetRecordFrom(req.RecordFrom); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, nodeResponse(n))
}

func (s *Server) handleListConnections(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conns := make([]ConnectionResponse, 0, s.net.ConnectionCount())
	for _, c := range s.net.Connections() {
		conns = append(conns, connectionResponse(c))
	}
	s.respondJSON(w, http.StatusOK, conns)
}

func (s *Server) handleAddConnection(w http.ResponseWriter, r *http.Request) {
	var desc network.ConnectionDescription
	if err := decodeJSON(w, r, &desc); err != nil {
		s.respondError(w, err)
		return
	}
	if err := netio.ValidateConnection(&desc); err != nil {
		s.respondError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.net.AddConnection(desc)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, connectionResponse(c))
}

func (s *Server) handleDeleteConnection(w http.ResponseWriter, r *http.Request, c *network.Connection) {
	if err := s.net.DeleteConnection(c); err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetConnectionParam(w http.ResponseWriter, r *http.Request, c *network.Connection) {
	var req valueRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	var err error
	if id := chi.URLParam(r, "id"); id == network.WeightParam {
		err = c.SetWeight(req.Value)
	} else {
		err = c.SetParameter(id, req.Value)
	}
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, connectionResponse(c))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	d, err := history.ParseDirection(chi.URLParam(r, "direction"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.history.Restore(d, s.net); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, HistoryResponse{
		Revision:  s.history.Index(),
		Revisions: s.history.Len(),
		Network:   s.net.Describe(),
	})
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	var models []*model.Model
	if et := r.URL.Query().Get("type"); et != "" {
		models = s.registry.Filter(et)
	} else {
		models = s.registry.List()
	}
	if models == nil {
		models = []*model.Model{}
	}
	s.respondJSON(w, http.StatusOK, models)
}
