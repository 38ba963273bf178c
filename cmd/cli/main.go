// Command cli is the SnapLink withdrawal CLI. It exercises the full
// client surface: session login, limits and balance lookups, the
// user's request list and form flow, and the moderator transitions.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/snaplink/snaplink-go/infra/cache"
	"github.com/snaplink/snaplink-go/infra/initializer"
	"github.com/snaplink/snaplink-go/infra/tokenfile"
	"github.com/snaplink/snaplink-go/pkg/auth"
	"github.com/snaplink/snaplink-go/pkg/client"
	"github.com/snaplink/snaplink-go/pkg/collection"
	"github.com/snaplink/snaplink-go/pkg/config"
	"github.com/snaplink/snaplink-go/pkg/format"
	"github.com/snaplink/snaplink-go/pkg/service"
	"github.com/snaplink/snaplink-go/pkg/withdrawal"
)

func usage() {
	fmt.Println("Usage: snaplink <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  login                                  store your API token")
	fmt.Println("  logout                                 remove the stored token")
	fmt.Println("  limits                                 show withdrawal limits")
	fmt.Println("  balance <user_id>                      show wallet balance")
	fmt.Println("  list [pages]                           list your withdrawal requests")
	fmt.Println("  show <id>                              show one request with moderator info")
	fmt.Println("  create <wallet_id> <amount> <account> <holder> <bank>")
	fmt.Println("  update <id> <account> <holder> <bank>  edit a pending request")
	fmt.Println("  cancel <id>                            cancel a pending request")
	fmt.Println("  admin list [status] [pages]            list all requests (moderator)")
	fmt.Println("  admin process|approve <id>             transition a request (moderator)")
	fmt.Println("  admin reject <id> <reason>")
	fmt.Println("  admin complete <id> <confirmation_url>")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	logger := initializer.SetupLogger(os.Getenv("SNAPLINK_LOG_LEVEL"))
	cfg, err := config.Load(logger)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := tokenfile.New(cfg.Token.Path)
	if err != nil {
		logger.Error("failed to open token store", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if token, err := store.Token(ctx); err == nil && token != "" && auth.Expired(token, time.Now()) {
		color.Yellow("Phiên đăng nhập đã hết hạn. Vui lòng chạy: snaplink login")
	}

	api := client.New(cfg.API, store, logger)
	limits := client.NewCachedLimits(api, cache.NewMemory(), cfg.Limits.CacheTTL, logger)
	app := &cliApp{
		cfg:    cfg,
		store:  store,
		api:    api,
		limits: limits,
		logger: logger,
	}

	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		color.Red("Lỗi: %v", err)
		os.Exit(1)
	}
}

type cliApp struct {
	cfg    *config.Config
	store  *tokenfile.Store
	api    *client.Client
	limits client.LimitsProvider
	logger *slog.Logger
}

func (a *cliApp) service(userID int64, admin bool) *service.Service {
	deps := service.Deps{
		API:    a.api,
		Limits: a.limits,
		Mine:   collection.New(collection.UserScope(a.api), a.cfg.API.PageSize, a.logger),
		UserID: userID,
		Logger: a.logger,
	}
	if admin {
		deps.Admin = collection.New(collection.AdminScope(a.api, nil), a.cfg.API.PageSize, a.logger)
	}
	return service.New(deps)
}

func (a *cliApp) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.login()
	case "logout":
		if err := a.store.Clear(); err != nil {
			return err
		}
		fmt.Println("Đã đăng xuất")
		return nil
	case "limits":
		return a.showLimits(ctx)
	case "balance":
		if len(args) < 1 {
			return fmt.Errorf("usage: balance <user_id>")
		}
		return a.showBalance(ctx, args[0])
	case "list":
		pages := 1
		if len(args) > 0 {
			pages, _ = strconv.Atoi(args[0])
		}
		return a.listMine(ctx, pages)
	case "show":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		return a.show(ctx, id)
	case "create":
		return a.create(ctx, args)
	case "update":
		return a.update(ctx, args)
	case "cancel":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		svc := a.service(0, false)
		if err := svc.Cancel(ctx, id); err != nil {
			return err
		}
		color.Green("Đã hủy yêu cầu #%d", id)
		return nil
	case "admin":
		if len(args) < 1 {
			return fmt.Errorf("usage: admin <list|process|approve|reject|complete> …")
		}
		return a.admin(ctx, args[0], args[1:])
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func parseID(args []string) (int64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("missing request id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid request id %q", args[0])
	}
	return id, nil
}

func (a *cliApp) login() error {
	fmt.Print("API token: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return fmt.Errorf("empty token")
	}
	if auth.Expired(token, time.Now()) {
		color.Yellow("Cảnh báo: token đã hết hạn")
	}
	if err := a.store.Save(token); err != nil {
		return err
	}
	color.Green("Đã lưu token")
	return nil
}

func (a *cliApp) showLimits(ctx context.Context) error {
	l, err := a.limits.Limits(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Tối thiểu: %s\n", format.Currency(l.MinAmount))
	fmt.Printf("Tối đa:    %s\n", format.Currency(l.MaxAmount))
	if l.DailyLimit != nil {
		fmt.Printf("Hạn mức ngày:  %s\n", format.Currency(*l.DailyLimit))
	}
	if l.MonthlyLimit != nil {
		fmt.Printf("Hạn mức tháng: %s\n", format.Currency(*l.MonthlyLimit))
	}
	return nil
}

func (a *cliApp) showBalance(ctx context.Context, userArg string) error {
	userID, err := strconv.ParseInt(userArg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid user id %q", userArg)
	}
	b, err := a.api.WalletBalance(ctx, userID)
	if err != nil {
		return err
	}
	fmt.Printf("Khả dụng:   %s\n", format.Currency(b.AvailableBalance))
	fmt.Printf("Đang chờ:   %s\n", format.Currency(b.PendingBalance))
	fmt.Printf("Tổng cộng:  %s\n", format.Currency(b.TotalBalance))
	return nil
}

func (a *cliApp) listMine(ctx context.Context, pages int) error {
	ctrl := collection.New(collection.UserScope(a.api), a.cfg.API.PageSize, a.logger)
	if err := ctrl.Fetch(ctx); err != nil {
		return err
	}
	for i := 1; i < pages && ctrl.HasMore(); i++ {
		if err := ctrl.LoadMore(ctx); err != nil {
			return err
		}
	}
	printRequests(ctrl.Items())
	p := ctrl.Pagination()
	fmt.Printf("Trang %d/%d — %d yêu cầu\n", p.Page, p.TotalPages, p.TotalCount)
	return nil
}

func (a *cliApp) show(ctx context.Context, id int64) error {
	r, err := a.api.GetDetail(ctx, id)
	if err != nil {
		return err
	}
	d := format.Status(r.RequestStatus)
	fmt.Printf("#%d  %s  %s\n", r.ID, d.Label, format.Currency(r.Amount))
	fmt.Printf("Tài khoản: %s — %s (%s)\n",
		format.MaskAccountNumber(r.BankAccountNumber), r.BankAccountName, r.BankName)
	fmt.Printf("Tạo lúc: %s\n", format.DateTime(r.RequestedAt))
	if r.ProcessedAt != nil {
		fmt.Printf("Xử lý lúc: %s\n", format.DateTime(*r.ProcessedAt))
	}
	if r.Moderator != nil {
		fmt.Printf("Người duyệt: %s\n", r.Moderator.FullName)
	}
	if r.RejectionReason != "" {
		color.Red("Lý do từ chối: %s", r.RejectionReason)
	}
	if r.ConfirmationReference != "" {
		fmt.Printf("Chứng từ: %s\n", r.ConfirmationReference)
	}
	return nil
}

func (a *cliApp) create(ctx context.Context, args []string) error {
	if len(args) < 5 {
		return fmt.Errorf("usage: create <wallet_id> <amount> <account> <holder> <bank>")
	}
	walletID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid wallet id %q", args[0])
	}
	amount, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[1])
	}
	form := withdrawal.CreateRequest{
		WalletID:          walletID,
		Amount:            amount,
		BankAccountNumber: args[2],
		BankAccountName:   args[3],
		BankName:          args[4],
	}

	limits, err := a.limits.Limits(ctx)
	if err != nil {
		return err
	}
	// Without a wallet snapshot the balance cap is left to the server.
	if errs := limits.ValidateForm(form, int64(1)<<62); !errs.IsValid() {
		printFormErrors(errs)
		return fmt.Errorf("biểu mẫu không hợp lệ")
	}

	created, err := a.api.Create(ctx, form)
	if err != nil {
		return err
	}
	color.Green("Đã tạo yêu cầu rút tiền #%d (%s)", created.ID, format.Currency(created.Amount))
	return nil
}

func (a *cliApp) update(ctx context.Context, args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("usage: update <id> <account> <holder> <bank>")
	}
	id, err := parseID(args)
	if err != nil {
		return err
	}
	updated, err := a.api.Update(ctx, id, withdrawal.UpdateRequest{
		BankAccountNumber: args[1],
		BankAccountName:   args[2],
		BankName:          args[3],
	})
	if err != nil {
		return err
	}
	color.Green("Đã cập nhật yêu cầu #%d", updated.ID)
	return nil
}

func (a *cliApp) admin(ctx context.Context, sub string, args []string) error {
	switch sub {
	case "list":
		var status *withdrawal.RequestStatus
		pages := 1
		if len(args) > 0 && args[0] != "" {
			s := withdrawal.RequestStatus(args[0])
			if s.Known() {
				status = &s
				args = args[1:]
			}
		}
		if len(args) > 0 {
			pages, _ = strconv.Atoi(args[0])
		}
		ctrl := collection.New(collection.AdminScope(a.api, status), a.cfg.API.PageSize, a.logger)
		if err := ctrl.Fetch(ctx); err != nil {
			return err
		}
		for i := 1; i < pages && ctrl.HasMore(); i++ {
			if err := ctrl.LoadMore(ctx); err != nil {
				return err
			}
		}
		printRequests(ctrl.Items())
		return nil
	case "process", "approve":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		svc := a.service(0, true)
		var r *withdrawal.WithdrawalRequest
		if sub == "process" {
			r, err = svc.Process(ctx, id, withdrawal.TransitionRequest{})
		} else {
			r, err = svc.Approve(ctx, id, withdrawal.TransitionRequest{})
		}
		if err != nil {
			return err
		}
		color.Green("Yêu cầu #%d → %s", r.ID, format.Status(r.RequestStatus).Label)
		return nil
	case "reject":
		if len(args) < 2 {
			return fmt.Errorf("usage: admin reject <id> <reason>")
		}
		id, err := parseID(args)
		if err != nil {
			return err
		}
		r, err := a.service(0, true).Reject(ctx, id, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		color.Green("Yêu cầu #%d → %s", r.ID, format.Status(r.RequestStatus).Label)
		return nil
	case "complete":
		if len(args) < 2 {
			return fmt.Errorf("usage: admin complete <id> <confirmation_url>")
		}
		id, err := parseID(args)
		if err != nil {
			return err
		}
		r, err := a.service(0, true).Complete(ctx, id, args[1])
		if err != nil {
			return err
		}
		color.Green("Yêu cầu #%d → %s", r.ID, format.Status(r.RequestStatus).Label)
		return nil
	default:
		return fmt.Errorf("unknown admin command %q", sub)
	}
}

func printRequests(items []withdrawal.WithdrawalRequest) {
	for _, r := range items {
		d := format.Status(r.RequestStatus)
		fmt.Printf("#%-6d %-12s %14s  %s  %s\n",
			r.ID, d.Label, format.Currency(r.Amount),
			format.MaskAccountNumber(r.BankAccountNumber),
			format.Date(r.RequestedAt))
	}
}

func printFormErrors(errs withdrawal.FormErrors) {
	for _, msg := range []string{errs.Amount, errs.BankAccountNumber, errs.BankAccountName, errs.BankName} {
		if msg != "" {
			color.Red("  - %s", msg)
		}
	}
}
