package discord

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// md5Hex returns the hex encoded MD5 digest of text
func md5Hex(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}

// InteractionErrorHash identifies a failed interaction in the logs. The
// timestamp is the creation time encoded in the interaction snowflake.
func InteractionErrorHash(i *discordgo.Interaction) string {
	var millis int64
	if ts, err := discordgo.SnowflakeTimestamp(i.ID); err == nil {
		millis = ts.UnixMilli()
	}
	return md5Hex(fmt.Sprintf("t:%d,g:%s,c:%s,i:%s", millis, i.GuildID, i.ChannelID, i.ID))
}
