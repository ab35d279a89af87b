// Package api exposes one network over HTTP for an editor front end.
//
// A [Server] owns a single [network.Network] together with its revision
// [history.History]. Every request that reads or mutates the network holds
// the server mutex for its whole duration, so serializations never observe a
// half-applied mutation.
//
// # Routes
//
//	GET    /network?target=db|simulator   serialize
//	PUT    /network                       replace from a db description
//	DELETE /network                       remove everything
//	GET    /network/problems              unresolved model references
//	GET    /nodes                         list nodes
//	POST   /nodes                         add a node
//	GET    /nodes/{index}                 one node
//	DELETE /nodes/{index}                 delete a node and its connections
//	PUT    /nodes/{index}/model           switch model
//	PUT    /nodes/{index}/size            set unit count
//	PUT    /nodes/{index}/params/{id}     set a parameter
//	POST   /nodes/{index}/reset           reset parameters to defaults
//	POST   /nodes/{index}/polarity        excitatory or inhibitory weights
//	GET    /nodes/{index}/recordables     channels a multimeter may record
//	PUT    /nodes/{index}/record-from     set a multimeter selection
//	POST   /connections                   add a connection
//	DELETE /connections/{index}           delete a connection
//	PUT    /connections/{index}/params/{id}  set a synapse parameter
//	POST   /history/{direction}           oldest, older, newer or newest
//	GET    /models?type=neuron            list the model catalogue
//
// Errors are JSON bodies carrying the error code from [errors.Code]; the
// HTTP status is derived from it.
package api
