package p2p

import (
	"encoding/json"
	"net"
	"time"

	"github.com/pkg/errors"

	"github.com/ZhuZhengyi/blockchain-go/netmsg"
	"github.com/ZhuZhengyi/blockchain-go/nodeconfig"
	"github.com/ZhuZhengyi/blockchain-go/transaction"
)

// SendTx dials addr and relays tx as a one-shot message, for use by
// callers (such as the CLI) that have no running Server of their own.
func SendTx(addr string, tx *transaction.Transaction) error {
	env, err := netmsg.NewTx(nodeconfig.Global().GetNodeAddr(), tx.Serialize())
	if err != nil {
		return err
	}
	return sendEnvelope(addr, env)
}

func sendEnvelope(addr string, env netmsg.Envelope) error {
	conn, err := net.DialTimeout("tcp", addr, writeTimeout)
	if err != nil {
		return errors.Wrapf(err, "p2p: dial %s", addr)
	}
	defer conn.Close()

	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return errors.Wrap(json.NewEncoder(conn).Encode(env), "p2p: send envelope")
}
