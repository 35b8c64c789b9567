// deeplink 命令行工具：不启动服务，直接在终端里转换链接和生成二维码
package main

import (
	"fmt"
	"os"

	"deeplink-generator/internal/deeplink"
	"deeplink-generator/internal/model"
	"deeplink-generator/internal/qrcode"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var host string

	root := &cobra.Command{
		Use:          "deeplink",
		Short:        "Snowflake 控制台深链接工具",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&host, "host", deeplink.DefaultHost, "控制台域名")

	root.AddCommand(newConvertCmd(&host), newTrackCmd(&host), newQRCmd())
	return root
}

func newConvertCmd(host *string) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <url>",
		Short: "推断产品名并生成深链接",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := deeplink.New(*host)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "product:  %s\n", t.InferProduct(args[0]))
			fmt.Fprintf(out, "deeplink: %s\n", t.GenerateDeeplink(args[0]))
			return nil
		},
	}
}

func newTrackCmd(host *string) *cobra.Command {
	var title, source string

	cmd := &cobra.Command{
		Use:   "track <url>",
		Short: "生成带 UTM 参数的追踪链接",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !model.Source(source).Valid() {
				return fmt.Errorf("未知的推广渠道 %q，可选: %v", source, model.Sources)
			}
			link := deeplink.New(*host).GenerateDeeplink(args[0])
			tracking := deeplink.GenerateTrackingURL(title, link, source)
			if tracking == "" {
				return fmt.Errorf("标题不能为 %q", deeplink.PlaceholderTitle)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tracking)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "My Awesome Post", "内容标题")
	cmd.Flags().StringVar(&source, "source", string(model.SourceQuickstart), "推广渠道")
	return cmd
}

func newQRCmd() *cobra.Command {
	var (
		output     string
		moduleSize int
		noBorder   bool
	)

	cmd := &cobra.Command{
		Use:   "qr <content>",
		Short: "把内容编码为 PNG 二维码",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			png, err := qrcode.NewEncoder(moduleSize, noBorder).PNG(args[0])
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, png, 0o644); err != nil {
				return fmt.Errorf("写入 %s 失败: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ 二维码已保存到 %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", qrcode.FileName, "输出文件")
	cmd.Flags().IntVar(&moduleSize, "size", 10, "每个模块的像素数")
	cmd.Flags().BoolVar(&noBorder, "no-border", false, "去掉静默区边框")
	return cmd
}
