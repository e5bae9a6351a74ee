package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"PlayoffPredictor/mailer"
	"PlayoffPredictor/models"
	"PlayoffPredictor/responses"
	"PlayoffPredictor/utils/formaterror"

	"github.com/badoux/checkmail"
	"github.com/gin-gonic/gin"
)

func (server *Server) groupResponse(group models.Group, includeInvite bool) responses.GroupResponse {
	memberModel := models.GroupMember{}
	count, err := memberModel.CountMembers(server.DB, group.ID)
	if err != nil {
		count = 0
	}

	resp := responses.GroupResponse{
		ID:          group.ID,
		PublicID:    group.PublicID,
		Name:        group.Name,
		IsPublic:    group.IsPublic,
		BuyinType:   group.BuyinType,
		BuyinPrice:  group.BuyinPrice,
		PaymentLink: group.PaymentLink,
		PointsR1:    group.PointsR1,
		PointsR2:    group.PointsR2,
		PointsR3:    group.PointsR3,
		PointsSB:    group.PointsSB,
		MemberCount: count,
		CreatedAt:   group.CreatedAt,
	}
	if includeInvite {
		resp.InviteLink = fmt.Sprintf("%s/invites/%s", appBaseURL(), group.PublicID)
	}
	return resp
}

func (server *Server) findGroupParam(c *gin.Context) (*models.Group, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errList["Invalid_request"] = "Invalid Request"
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  errList,
		})
		return nil, false
	}

	group := models.Group{}
	found, err := group.FindGroupByID(server.DB, uint(id))
	if err != nil {
		errList["No_group"] = "No Group Found"
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  errList,
		})
		return nil, false
	}
	return found, true
}

func (server *Server) CreateGroup(c *gin.Context) {

	errList = map[string]string{}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Unable to get request",
		})
		return
	}

	group := models.Group{}
	if err := json.Unmarshal(body, &group); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	group.OwnerID = c.GetUint("userID")
	group.Prepare()
	errorMessages := group.Validate()
	if len(errorMessages) > 0 {
		errList = errorMessages
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return
	}

	created, err := group.SaveGroup(server.DB)
	if err != nil {
		errList = formaterror.FormatError(err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  errList,
		})
		return
	}

	// The owner is the first member.
	member := models.GroupMember{
		GroupID:   created.ID,
		UserID:    created.OwnerID,
		PaidBuyIn: created.BuyinType == models.BuyinNone,
	}
	if _, err := member.AddMember(server.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not add owner to group",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": server.groupResponse(*created, true),
	})
}

func (server *Server) GetPublicGroups(c *gin.Context) {

	errList = map[string]string{}

	group := models.Group{}
	groups, err := group.FindPublicGroups(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not load groups",
		})
		return
	}

	publicGroups := make([]responses.GroupResponse, 0, len(*groups))
	for _, g := range *groups {
		publicGroups = append(publicGroups, server.groupResponse(g, false))
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": publicGroups,
	})
}

func (server *Server) GetMyGroups(c *gin.Context) {

	errList = map[string]string{}

	uid := c.GetUint("userID")

	group := models.Group{}
	groups, err := group.FindUserGroups(server.DB, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not load groups",
		})
		return
	}

	myGroups := make([]responses.GroupResponse, 0, len(*groups))
	for _, g := range *groups {
		myGroups = append(myGroups, server.groupResponse(g, g.OwnerID == uid))
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": myGroups,
	})
}

func (server *Server) GetGroup(c *gin.Context) {

	errList = map[string]string{}

	group, ok := server.findGroupParam(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": server.groupResponse(*group, false),
	})
}

func (server *Server) UpdateGroup(c *gin.Context) {

	errList = map[string]string{}

	group, ok := server.findGroupParam(c)
	if !ok {
		return
	}

	uid := c.GetUint("userID")
	if group.OwnerID != uid && !c.GetBool("isAdmin") {
		errList["Unauthorized"] = "Only the group owner can update it"
		c.JSON(http.StatusForbidden, gin.H{
			"status": http.StatusForbidden,
			"error":  errList,
		})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Unable to get request",
		})
		return
	}

	updated := models.Group{}
	if err := json.Unmarshal(body, &updated); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	updated.ID = group.ID
	updated.OwnerID = group.OwnerID
	updated.Prepare()
	errorMessages := updated.Validate()
	if len(errorMessages) > 0 {
		errList = errorMessages
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return
	}

	saved, err := updated.UpdateGroup(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not update group",
		})
		return
	}

	// Scoring weights may have changed.
	server.invalidateLeaderboard(c.Request.Context(), saved.ID)

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": server.groupResponse(*saved, true),
	})
}

func (server *Server) DeleteGroup(c *gin.Context) {

	errList = map[string]string{}

	group, ok := server.findGroupParam(c)
	if !ok {
		return
	}

	uid := c.GetUint("userID")
	if group.OwnerID != uid && !c.GetBool("isAdmin") {
		errList["Unauthorized"] = "Only the group owner can delete it"
		c.JSON(http.StatusForbidden, gin.H{
			"status": http.StatusForbidden,
			"error":  errList,
		})
		return
	}

	if _, err := group.DeleteGroup(server.DB, group.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not delete group",
		})
		return
	}

	server.invalidateLeaderboard(c.Request.Context(), group.ID)

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Group deleted",
	})
}

func (server *Server) joinGroup(c *gin.Context, group *models.Group) {
	uid := c.GetUint("userID")

	memberModel := models.GroupMember{}
	already, err := memberModel.IsMember(server.DB, group.ID, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not join group",
		})
		return
	}
	if already {
		errList["Already_member"] = "You are already in this group"
		c.JSON(http.StatusConflict, gin.H{
			"status": http.StatusConflict,
			"error":  errList,
		})
		return
	}

	var payload struct {
		PaidBuyIn bool `json:"paid_buy_in"`
	}
	// The body is optional; joining without one means no buy-in yet.
	_ = c.ShouldBindJSON(&payload)

	member := models.GroupMember{
		GroupID:   group.ID,
		UserID:    uid,
		PaidBuyIn: group.BuyinType == models.BuyinNone || payload.PaidBuyIn,
	}
	if _, err := member.AddMember(server.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not join group",
		})
		return
	}

	server.invalidateLeaderboard(c.Request.Context(), group.ID)

	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": server.groupResponse(*group, false),
	})
}

func (server *Server) JoinGroup(c *gin.Context) {

	errList = map[string]string{}

	group, ok := server.findGroupParam(c)
	if !ok {
		return
	}

	// Private pools are invite-only.
	if !group.IsPublic {
		errList["Private_group"] = "This group requires an invite link"
		c.JSON(http.StatusForbidden, gin.H{
			"status": http.StatusForbidden,
			"error":  errList,
		})
		return
	}

	server.joinGroup(c, group)
}

func (server *Server) LeaveGroup(c *gin.Context) {

	errList = map[string]string{}

	group, ok := server.findGroupParam(c)
	if !ok {
		return
	}

	uid := c.GetUint("userID")
	if group.OwnerID == uid {
		errList["Owner_leave"] = "The owner cannot leave, delete the group instead"
		c.JSON(http.StatusForbidden, gin.H{
			"status": http.StatusForbidden,
			"error":  errList,
		})
		return
	}

	memberModel := models.GroupMember{}
	removed, err := memberModel.RemoveMember(server.DB, group.ID, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not leave group",
		})
		return
	}
	if removed == 0 {
		errList["Not_member"] = "You are not in this group"
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  errList,
		})
		return
	}

	server.invalidateLeaderboard(c.Request.Context(), group.ID)

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Left group",
	})
}

func (server *Server) GetGroupMembers(c *gin.Context) {

	errList = map[string]string{}

	group, ok := server.findGroupParam(c)
	if !ok {
		return
	}

	memberModel := models.GroupMember{}
	members, err := memberModel.FindMembers(server.DB, group.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not load members",
		})
		return
	}

	userModel := models.User{}
	memberResponses := make([]responses.GroupMemberResponse, 0, len(*members))
	for _, m := range *members {
		user, err := userModel.FindUserByID(server.DB, m.UserID)
		if err != nil {
			continue
		}
		memberResponses = append(memberResponses, responses.GroupMemberResponse{
			UserID:      m.UserID,
			Username:    user.Username,
			DisplayName: user.DisplayName,
			PaidBuyIn:   m.PaidBuyIn,
			JoinedAt:    m.JoinedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": memberResponses,
	})
}

// MarkMemberPaid lets the owner flag who has settled the buy-in, which
// controls prize pool eligibility.
func (server *Server) MarkMemberPaid(c *gin.Context) {

	errList = map[string]string{}

	group, ok := server.findGroupParam(c)
	if !ok {
		return
	}

	uid := c.GetUint("userID")
	if group.OwnerID != uid && !c.GetBool("isAdmin") {
		errList["Unauthorized"] = "Only the group owner can mark payments"
		c.JSON(http.StatusForbidden, gin.H{
			"status": http.StatusForbidden,
			"error":  errList,
		})
		return
	}

	memberID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		errList["Invalid_request"] = "Invalid Request"
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  errList,
		})
		return
	}

	var payload struct {
		Paid bool `json:"paid"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	result := server.DB.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", group.ID, uint(memberID)).
		Update("paid_buy_in", payload.Paid)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not update member",
		})
		return
	}
	if result.RowsAffected == 0 {
		errList["Not_member"] = "That user is not in this group"
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  errList,
		})
		return
	}

	server.invalidateLeaderboard(c.Request.Context(), group.ID)

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Member updated",
	})
}

func (server *Server) InviteToGroup(c *gin.Context) {

	errList = map[string]string{}

	group, ok := server.findGroupParam(c)
	if !ok {
		return
	}

	uid := c.GetUint("userID")
	memberModel := models.GroupMember{}
	isMember, err := memberModel.IsMember(server.DB, group.ID, uid)
	if err != nil || (!isMember && group.OwnerID != uid) {
		errList["Unauthorized"] = "Only members can send invites"
		c.JSON(http.StatusForbidden, gin.H{
			"status": http.StatusForbidden,
			"error":  errList,
		})
		return
	}

	var payload struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Email == "" {
		errList["Required_email"] = "Required Email"
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return
	}
	if err := checkmail.ValidateFormat(payload.Email); err != nil {
		errList["Invalid_email"] = "Invalid Email"
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return
	}

	link := fmt.Sprintf("%s/invites/%s", appBaseURL(), group.PublicID)
	if err := mailer.SendGroupInvite(payload.Email, group.Name, link); err != nil {
		log.Printf("group invite email to %s failed: %v", payload.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not send invite",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Invite sent",
	})
}

// GetInvite resolves an invite code to the group it opens.
func (server *Server) GetInvite(c *gin.Context) {

	errList = map[string]string{}

	group := models.Group{}
	found, err := group.FindGroupByPublicID(server.DB, c.Param("code"))
	if err != nil {
		errList["No_group"] = "No Group Found"
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  errList,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": server.groupResponse(*found, false),
	})
}

// JoinByInvite joins through an invite code, private groups included.
func (server *Server) JoinByInvite(c *gin.Context) {

	errList = map[string]string{}

	group := models.Group{}
	found, err := group.FindGroupByPublicID(server.DB, c.Param("code"))
	if err != nil {
		errList["No_group"] = "No Group Found"
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  errList,
		})
		return
	}

	server.joinGroup(c, found)
}
