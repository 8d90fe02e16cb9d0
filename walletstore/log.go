package walletstore

import (
	"github.com/ZhuZhengyi/blockchain-go/logger"
	"github.com/ZhuZhengyi/blockchain-go/logs"
)

var log logs.Logger

func init() {
	log, _ = logger.Get(logger.SubsystemTags.WLLT)
}
