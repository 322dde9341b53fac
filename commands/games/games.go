package gamescmd

import (
	"context"
	"fmt"

	"PixBot/bot"
	"PixBot/commands"
	"PixBot/games"
	"PixBot/rewards"
	"PixBot/utils"

	"github.com/bwmarrin/discordgo"
)

func Flip(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := commands.OptionMap(i)
	res, err := b.Games.Flip(context.Background(), commands.CallerID(i), opts.String("choice", ""), opts.Int("stake", 0))
	if err != nil {
		commands.Fail(s, i, err)
		return
	}
	commands.Respond(s, i, flipMessage(res, opts.Int("stake", 0)))
}

func flipMessage(res games.FlipResult, stake int64) string {
	if res.Won {
		return fmt.Sprintf("🎉 It landed on **%s**!\nYou won **%s PixCoins**!", res.Side, utils.FormatCoins(res.Payout))
	}
	return fmt.Sprintf("😢 It landed on **%s**...\nYou lost **%s PixCoins**.", res.Side, utils.FormatCoins(stake))
}

func Mines(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := commands.OptionMap(i)
	stake := opts.Int("stake", 0)
	res, err := b.Games.Mines(context.Background(), commands.CallerID(i),
		int(opts.Int("position", 0)), int(opts.Int("mines", 0)), stake)
	if err != nil {
		commands.Fail(s, i, err)
		return
	}
	commands.RespondEmbed(s, i, minesEmbed(res, stake))
}

func minesEmbed(res games.MinesResult, stake int64) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{Description: games.RenderBoard(res)}
	result := fmt.Sprintf("You won **%s PixCoins**", utils.FormatCoins(res.Payout))
	if res.Hit {
		embed.Title = "💥 BOOM!"
		embed.Color = commands.ColorModerator
		result = fmt.Sprintf("You lost **%s PixCoins**", utils.FormatCoins(stake))
	} else {
		embed.Title = "💎 Victory!"
		embed.Color = commands.ColorGames
	}
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Result", Value: result},
		{Name: "💣 Mines", Value: fmt.Sprint(len(res.Mines)), Inline: true},
		{Name: "📈 Multiplier", Value: fmt.Sprintf("x%.2f", res.Multiplier), Inline: true},
	}
	return embed
}

func Invest(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	res, err := b.Games.Invest(context.Background(), commands.CallerID(i), commands.OptionMap(i).Int("amount", 0))
	if err != nil {
		commands.Fail(s, i, err)
		return
	}
	commands.Respond(s, i, investMessage(res))
}

func investMessage(res games.InvestResult) string {
	if res.Success {
		return fmt.Sprintf("📈 The investment paid off! You got back **%s PixCoins**.", utils.FormatCoins(res.Amount))
	}
	return fmt.Sprintf("📉 The investment failed! You lost **%s PixCoins**.", utils.FormatCoins(res.Amount))
}

func Hunt(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	res, err := b.Rewards.Hunt(context.Background(), commands.CallerID(i))
	if err != nil {
		commands.Fail(s, i, err)
		return
	}
	commands.Respond(s, i, huntMessage(res))
}

func huntMessage(res rewards.HuntResult) string {
	switch res.Outcome {
	case rewards.BigFind:
		return fmt.Sprintf("💎 You dug up a chest full of gold! **+%s PixCoins**", utils.FormatCoins(res.Amount))
	case rewards.CommonFind:
		return fmt.Sprintf("🪙 You found a few coins buried in the sand. **+%s PixCoins**", utils.FormatCoins(res.Amount))
	default:
		return fmt.Sprintf("🪤 It was a trap! You lost **%s PixCoins**.", utils.FormatCoins(res.Amount))
	}
}
